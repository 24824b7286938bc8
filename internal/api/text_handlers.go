package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/service"
)

func (s *Server) registerTextRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTexts",
		Method:      http.MethodGet,
		Path:        "/api/v1/texts",
		Summary:     "List texts",
		Description: "Returns text records. Admins and mods see all records, users see active only.",
		Tags:        []string{"Texts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTexts)

	huma.Register(s.api, huma.Operation{
		OperationID: "createText",
		Method:      http.MethodPost,
		Path:        "/api/v1/texts",
		Summary:     "Create text",
		Description: "Creates a text record. Admin submissions go live immediately, mod submissions start pending.",
		Tags:        []string{"Texts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateText)

	huma.Register(s.api, huma.Operation{
		OperationID: "getText",
		Method:      http.MethodGet,
		Path:        "/api/v1/texts/{id}",
		Summary:     "Get text",
		Description: "Returns a text record by ID",
		Tags:        []string{"Texts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetText)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateText",
		Method:      http.MethodPut,
		Path:        "/api/v1/texts/{id}",
		Summary:     "Update text",
		Description: "Applies a partial update. Absent fields keep their stored values.",
		Tags:        []string{"Texts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateText)

	huma.Register(s.api, huma.Operation{
		OperationID: "approveText",
		Method:      http.MethodPut,
		Path:        "/api/v1/texts/{id}/approve",
		Summary:     "Approve text",
		Description: "Transitions a pending record to active. Idempotent.",
		Tags:        []string{"Texts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleApproveText)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteText",
		Method:      http.MethodDelete,
		Path:        "/api/v1/texts/{id}",
		Summary:     "Delete text",
		Description: "Deletes a text record. Vocabulary values it referenced stay registered.",
		Tags:        []string{"Texts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteText)
}

// === DTOs ===

// TextResponse contains text record data in API responses.
type TextResponse struct {
	ID           string            `json:"id" doc:"Text ID"`
	Primary      string            `json:"primary" doc:"Primary text"`
	Translations map[string]string `json:"translations" doc:"Translations by language code"`
	Tags         []string          `json:"tags" doc:"Tag values, author order"`
	Playlists    []string          `json:"playlists" doc:"Playlist values, author order"`
	Status       domain.Status     `json:"status" doc:"Review status"`
	CreatedAt    time.Time         `json:"createdAt" doc:"Creation time"`
}

func mapTextResponse(t *domain.Text) TextResponse {
	return TextResponse{
		ID:           t.ID,
		Primary:      t.Primary,
		Translations: t.Translations,
		Tags:         t.Tags,
		Playlists:    t.Playlists,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
	}
}

// ListTextsInput contains parameters for listing texts.
type ListTextsInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	Status        string `query:"status" doc:"Optional status filter (pending or active)"`
}

// ListTextsResponse contains a list of texts.
type ListTextsResponse struct {
	Texts []TextResponse `json:"texts" doc:"Text records in creation order"`
}

// ListTextsOutput wraps the list response for Huma.
type ListTextsOutput struct {
	Body ListTextsResponse
}

// CreateTextRequest is the request body for creating a text.
type CreateTextRequest struct {
	Primary      string            `json:"primary" validate:"required,max=10000" doc:"Primary text"`
	Translations map[string]string `json:"translations,omitempty" doc:"Translations by language code"`
	Tags         []string          `json:"tags,omitempty" doc:"Tag values"`
	Playlists    []string          `json:"playlists,omitempty" doc:"Playlist values"`
}

// CreateTextInput wraps the create request for Huma.
type CreateTextInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	Body          CreateTextRequest
}

// TextOutput wraps a single text response for Huma.
type TextOutput struct {
	Body TextResponse
}

// GetTextInput contains parameters for getting a text.
type GetTextInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	ID            string `path:"id" doc:"Text ID"`
}

// UpdateTextRequest is the request body for updating a text.
// Absent fields keep their stored values; an empty list or map clears the field.
type UpdateTextRequest struct {
	Primary      *string            `json:"primary,omitempty" validate:"omitempty,max=10000" doc:"Primary text"`
	Translations *map[string]string `json:"translations,omitempty" doc:"Translations by language code"`
	Tags         *[]string          `json:"tags,omitempty" doc:"Tag values"`
	Playlists    *[]string          `json:"playlists,omitempty" doc:"Playlist values"`
}

// UpdateTextInput wraps the update request for Huma.
type UpdateTextInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	ID            string `path:"id" doc:"Text ID"`
	Body          UpdateTextRequest
}

// ApproveTextInput contains parameters for approving a text.
type ApproveTextInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	ID            string `path:"id" doc:"Text ID"`
}

// DeleteTextInput contains parameters for deleting a text.
type DeleteTextInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	ID            string `path:"id" doc:"Text ID"`
}

// === Handlers ===

func (s *Server) handleListTexts(ctx context.Context, input *ListTextsInput) (*ListTextsOutput, error) {
	role, err := s.authenticateRequest(input.Authorization, input.Session)
	if err != nil {
		return nil, err
	}

	texts, err := s.services.Text.List(ctx, role)
	if err != nil {
		return nil, err
	}

	resp := make([]TextResponse, 0, len(texts))
	for _, t := range texts {
		// The service already restricts users to active records, so a user
		// asking for pending simply gets an empty list.
		if input.Status != "" && t.Status != domain.Status(input.Status) {
			continue
		}
		resp = append(resp, mapTextResponse(t))
	}

	return &ListTextsOutput{Body: ListTextsResponse{Texts: resp}}, nil
}

func (s *Server) handleCreateText(ctx context.Context, input *CreateTextInput) (*TextOutput, error) {
	role, err := s.authenticateAndRequireEditor(input.Authorization, input.Session)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Text.Create(ctx, role, service.CreateTextRequest{
		Primary:      input.Body.Primary,
		Translations: input.Body.Translations,
		Tags:         input.Body.Tags,
		Playlists:    input.Body.Playlists,
	})
	if err != nil {
		return nil, err
	}

	return &TextOutput{Body: mapTextResponse(t)}, nil
}

func (s *Server) handleGetText(ctx context.Context, input *GetTextInput) (*TextOutput, error) {
	role, err := s.authenticateRequest(input.Authorization, input.Session)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Text.Get(ctx, role, input.ID)
	if err != nil {
		return nil, err
	}

	return &TextOutput{Body: mapTextResponse(t)}, nil
}

func (s *Server) handleUpdateText(ctx context.Context, input *UpdateTextInput) (*TextOutput, error) {
	if _, err := s.authenticateAndRequireEditor(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	t, err := s.services.Text.Update(ctx, input.ID, service.UpdateTextRequest{
		Primary:      input.Body.Primary,
		Translations: input.Body.Translations,
		Tags:         input.Body.Tags,
		Playlists:    input.Body.Playlists,
	})
	if err != nil {
		return nil, err
	}

	return &TextOutput{Body: mapTextResponse(t)}, nil
}

func (s *Server) handleApproveText(ctx context.Context, input *ApproveTextInput) (*TextOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	t, err := s.services.Text.Approve(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TextOutput{Body: mapTextResponse(t)}, nil
}

func (s *Server) handleDeleteText(ctx context.Context, input *DeleteTextInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	if err := s.services.Text.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Text deleted"}}, nil
}
