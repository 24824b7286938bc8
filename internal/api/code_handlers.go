package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/service"
)

func (s *Server) registerCodeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateCode",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/codes",
		Summary:     "Generate access code",
		Description: "Issues a new random access code carrying a mod or user role",
		Tags:        []string{"Access Codes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGenerateCode)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCodes",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/codes",
		Summary:     "List access codes",
		Description: "Returns issued access codes, oldest first. Active only unless all=true.",
		Tags:        []string{"Access Codes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCodes)

	huma.Register(s.api, huma.Operation{
		OperationID: "revokeCode",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/codes/{id}",
		Summary:     "Revoke access code",
		Description: "Deactivates an issued code. The record is kept for auditing.",
		Tags:        []string{"Access Codes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRevokeCode)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCodeLabel",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/codes/{id}/label",
		Summary:     "Update code label",
		Description: "Changes the display label of an issued code",
		Tags:        []string{"Access Codes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCodeLabel)
}

// === DTOs ===

// CodeResponse contains access code data in API responses.
type CodeResponse struct {
	ID        string      `json:"id" doc:"Code ID"`
	Code      string      `json:"code" doc:"The opaque code value"`
	Role      domain.Role `json:"role" doc:"Role the code grants"`
	Label     string      `json:"label" doc:"Display label"`
	Active    bool        `json:"active" doc:"Whether the code still resolves"`
	CreatedBy string      `json:"createdBy" doc:"Role that issued the code"`
	CreatedAt time.Time   `json:"createdAt" doc:"Issue time"`
}

func mapCodeResponse(c *domain.AccessCode) CodeResponse {
	return CodeResponse{
		ID:        c.ID,
		Code:      c.Code,
		Role:      c.Role,
		Label:     c.Label,
		Active:    c.Active,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

// GenerateCodeRequest is the request body for generating a code.
type GenerateCodeRequest struct {
	Role  domain.Role `json:"role" validate:"required,oneof=mod user" doc:"Role the code grants (mod or user)"`
	Label string      `json:"label,omitempty" validate:"max=200" doc:"Display label"`
}

// GenerateCodeInput wraps the generate request for Huma.
type GenerateCodeInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	Body          GenerateCodeRequest
}

// CodeOutput wraps a single code response for Huma.
type CodeOutput struct {
	Body CodeResponse
}

// ListCodesInput contains parameters for listing codes.
type ListCodesInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	All           bool   `query:"all" doc:"Include revoked codes"`
}

// ListCodesResponse contains a list of access codes.
type ListCodesResponse struct {
	Codes []CodeResponse `json:"codes" doc:"Issued codes, oldest first"`
}

// ListCodesOutput wraps the list response for Huma.
type ListCodesOutput struct {
	Body ListCodesResponse
}

// RevokeCodeInput contains parameters for revoking a code.
type RevokeCodeInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	ID            string `path:"id" doc:"Code ID"`
}

// UpdateCodeLabelRequest is the request body for updating a code label.
type UpdateCodeLabelRequest struct {
	Label string `json:"label" validate:"max=200" doc:"New display label"`
}

// UpdateCodeLabelInput wraps the label update request for Huma.
type UpdateCodeLabelInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	ID            string `path:"id" doc:"Code ID"`
	Body          UpdateCodeLabelRequest
}

// === Handlers ===

func (s *Server) handleGenerateCode(ctx context.Context, input *GenerateCodeInput) (*CodeOutput, error) {
	role, err := s.authenticateAndRequireAdmin(input.Authorization, input.Session)
	if err != nil {
		return nil, err
	}

	code, err := s.services.Code.Generate(ctx, role, service.GenerateCodeRequest{
		Role:  input.Body.Role,
		Label: input.Body.Label,
	})
	if err != nil {
		return nil, err
	}

	return &CodeOutput{Body: mapCodeResponse(code)}, nil
}

func (s *Server) handleListCodes(ctx context.Context, input *ListCodesInput) (*ListCodesOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	codes, err := s.services.Code.List(ctx, !input.All)
	if err != nil {
		return nil, err
	}

	resp := make([]CodeResponse, len(codes))
	for i, c := range codes {
		resp[i] = mapCodeResponse(c)
	}

	return &ListCodesOutput{Body: ListCodesResponse{Codes: resp}}, nil
}

func (s *Server) handleRevokeCode(ctx context.Context, input *RevokeCodeInput) (*CodeOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	code, err := s.services.Code.Revoke(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CodeOutput{Body: mapCodeResponse(code)}, nil
}

func (s *Server) handleUpdateCodeLabel(ctx context.Context, input *UpdateCodeLabelInput) (*CodeOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	code, err := s.services.Code.UpdateLabel(ctx, input.ID, service.UpdateLabelRequest{
		Label: input.Body.Label,
	})
	if err != nil {
		return nil, err
	}

	return &CodeOutput{Body: mapCodeResponse(code)}, nil
}
