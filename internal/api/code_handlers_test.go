package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
)

func TestGenerateCode_AndLoginWithIt(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.tokenFor(t, domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "mod", "label": "editor invite"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, "generate failed: %s", resp.Body.String())

	code := decodeBody[CodeResponse](t, resp.Body.Bytes())
	assert.Equal(t, domain.RoleMod, code.Role)
	assert.Equal(t, "editor invite", code.Label)
	assert.True(t, code.Active)
	assert.NotEmpty(t, code.Code)
	assert.Equal(t, string(domain.RoleAdmin), code.CreatedBy)

	// The freshly issued code works for login.
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{"code": code.Code})
	require.Equal(t, http.StatusOK, resp.Code)

	login := decodeBody[LoginResponse](t, resp.Body.Bytes())
	assert.Equal(t, domain.RoleMod, login.Role)
}

func TestGenerateCode_AdminRoleRejected(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.tokenFor(t, domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "admin"},
		"Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCodeRoutes_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	modToken := ts.tokenFor(t, domain.RoleMod)

	resp := ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "user"},
		"Authorization: Bearer "+modToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Get("/api/v1/admin/codes", "Authorization: Bearer "+modToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/admin/codes/code-x", "Authorization: Bearer "+modToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestListCodes_ActiveFilter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.tokenFor(t, domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "user", "label": "first"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	first := decodeBody[CodeResponse](t, resp.Body.Bytes())

	resp = ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "mod", "label": "second"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/admin/codes/"+first.ID, "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	revoked := decodeBody[CodeResponse](t, resp.Body.Bytes())
	assert.False(t, revoked.Active)

	// Default listing hides revoked codes.
	resp = ts.api.Get("/api/v1/admin/codes", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeBody[ListCodesResponse](t, resp.Body.Bytes())
	require.Len(t, list.Codes, 1)
	assert.Equal(t, "second", list.Codes[0].Label)

	// all=true includes them.
	resp = ts.api.Get("/api/v1/admin/codes?all=true", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	list = decodeBody[ListCodesResponse](t, resp.Body.Bytes())
	assert.Len(t, list.Codes, 2)
}

func TestRevokeCode_StopsLogin(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.tokenFor(t, domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "user"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	code := decodeBody[CodeResponse](t, resp.Body.Bytes())

	resp = ts.api.Delete("/api/v1/admin/codes/"+code.ID, "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{"code": code.Code})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRevokeCode_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.tokenFor(t, domain.RoleAdmin)

	resp := ts.api.Delete("/api/v1/admin/codes/code-missing", "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateCodeLabel(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.tokenFor(t, domain.RoleAdmin)

	resp := ts.api.Post("/api/v1/admin/codes",
		map[string]any{"role": "user", "label": "before"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	code := decodeBody[CodeResponse](t, resp.Body.Bytes())

	resp = ts.api.Put("/api/v1/admin/codes/"+code.ID+"/label",
		map[string]any{"label": "after"},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, "label update failed: %s", resp.Body.String())

	updated := decodeBody[CodeResponse](t, resp.Body.Bytes())
	assert.Equal(t, "after", updated.Label)
}
