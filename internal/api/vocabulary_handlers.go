package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
)

func (s *Server) registerVocabularyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getVocabulary",
		Method:      http.MethodGet,
		Path:        "/api/v1/vocabulary",
		Summary:     "Get vocabulary",
		Description: "Returns the shared tag and playlist vocabularies",
		Tags:        []string{"Vocabulary"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetVocabulary)

	huma.Register(s.api, huma.Operation{
		OperationID: "addVocabularyValue",
		Method:      http.MethodPost,
		Path:        "/api/v1/vocabulary/{type}",
		Summary:     "Add vocabulary value",
		Description: "Adds a value to the tag or playlist vocabulary. Idempotent.",
		Tags:        []string{"Vocabulary"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddVocabularyValue)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameVocabularyValue",
		Method:      http.MethodPut,
		Path:        "/api/v1/vocabulary/{type}",
		Summary:     "Rename vocabulary value",
		Description: "Renames a vocabulary value and rewrites every text referencing it",
		Tags:        []string{"Vocabulary"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRenameVocabularyValue)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteVocabularyValue",
		Method:      http.MethodDelete,
		Path:        "/api/v1/vocabulary/{type}",
		Summary:     "Delete vocabulary value",
		Description: "Removes a vocabulary value and strips it from every text referencing it",
		Tags:        []string{"Vocabulary"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteVocabularyValue)
}

// === DTOs ===

// GetVocabularyInput contains parameters for fetching the vocabulary.
type GetVocabularyInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
}

// VocabularyResponse contains both vocabulary lists.
type VocabularyResponse struct {
	Tags      []string `json:"tags" doc:"All tag values, sorted"`
	Playlists []string `json:"playlists" doc:"All playlist values, sorted"`
}

// VocabularyOutput wraps the vocabulary response for Huma.
type VocabularyOutput struct {
	Body VocabularyResponse
}

// AddVocabularyRequest is the request body for adding a vocabulary value.
type AddVocabularyRequest struct {
	Value string `json:"value" validate:"required" doc:"Value to add"`
}

// AddVocabularyInput wraps the add request for Huma.
type AddVocabularyInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	Type          string `path:"type" enum:"tags,playlists" doc:"Vocabulary list"`
	Body          AddVocabularyRequest
}

// AddVocabularyResponse reports the result of an add.
type AddVocabularyResponse struct {
	Success bool   `json:"success" doc:"Always true on 2xx"`
	Message string `json:"message" doc:"Whether the value was added or already present"`
}

// AddVocabularyOutput wraps the add response for Huma.
type AddVocabularyOutput struct {
	Body AddVocabularyResponse
}

// RenameVocabularyRequest is the request body for renaming a vocabulary value.
type RenameVocabularyRequest struct {
	OldVal string `json:"oldVal" validate:"required" doc:"Existing value"`
	NewVal string `json:"newVal" validate:"required" doc:"Replacement value"`
}

// RenameVocabularyInput wraps the rename request for Huma.
type RenameVocabularyInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	Type          string `path:"type" enum:"tags,playlists" doc:"Vocabulary list"`
	Body          RenameVocabularyRequest
}

// VocabularyCascadeResponse reports a cascading vocabulary change.
type VocabularyCascadeResponse struct {
	Success      bool `json:"success" doc:"Always true on 2xx"`
	UpdatedTexts int  `json:"updatedTexts" doc:"Number of texts rewritten"`
}

// VocabularyCascadeOutput wraps the cascade response for Huma.
type VocabularyCascadeOutput struct {
	Body VocabularyCascadeResponse
}

// DeleteVocabularyRequest is the request body for deleting a vocabulary value.
type DeleteVocabularyRequest struct {
	Value string `json:"value" validate:"required" doc:"Value to delete"`
}

// DeleteVocabularyInput wraps the delete request for Huma.
type DeleteVocabularyInput struct {
	Authorization string `header:"Authorization"`
	Session       string `cookie:"mtpt_session"`
	Type          string `path:"type" enum:"tags,playlists" doc:"Vocabulary list"`
	Body          DeleteVocabularyRequest
}

// === Handlers ===

func (s *Server) handleGetVocabulary(ctx context.Context, input *GetVocabularyInput) (*VocabularyOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	v, err := s.services.Vocabulary.List(ctx)
	if err != nil {
		return nil, err
	}

	return &VocabularyOutput{
		Body: VocabularyResponse{
			Tags:      v.Tags,
			Playlists: v.Playlists,
		},
	}, nil
}

func (s *Server) handleAddVocabularyValue(ctx context.Context, input *AddVocabularyInput) (*AddVocabularyOutput, error) {
	if _, err := s.authenticateAndRequireEditor(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	added, err := s.services.Vocabulary.AddItem(ctx, domain.ListType(input.Type), input.Body.Value)
	if err != nil {
		return nil, err
	}

	msg := "Value already present"
	if added {
		msg = "Value added"
	}

	return &AddVocabularyOutput{
		Body: AddVocabularyResponse{Success: true, Message: msg},
	}, nil
}

func (s *Server) handleRenameVocabularyValue(ctx context.Context, input *RenameVocabularyInput) (*VocabularyCascadeOutput, error) {
	if _, err := s.authenticateAndRequireEditor(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	updated, err := s.services.Vocabulary.RenameItem(ctx, domain.ListType(input.Type), input.Body.OldVal, input.Body.NewVal)
	if err != nil {
		return nil, err
	}

	return &VocabularyCascadeOutput{
		Body: VocabularyCascadeResponse{Success: true, UpdatedTexts: updated},
	}, nil
}

func (s *Server) handleDeleteVocabularyValue(ctx context.Context, input *DeleteVocabularyInput) (*VocabularyCascadeOutput, error) {
	if _, err := s.authenticateAndRequireEditor(input.Authorization, input.Session); err != nil {
		return nil, err
	}

	updated, err := s.services.Vocabulary.DeleteItem(ctx, domain.ListType(input.Type), input.Body.Value)
	if err != nil {
		return nil, err
	}

	return &VocabularyCascadeOutput{
		Body: VocabularyCascadeResponse{Success: true, UpdatedTexts: updated},
	}, nil
}
