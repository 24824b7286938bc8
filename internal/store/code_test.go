package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/domain"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/id"
)

func newTestCode(code string, role domain.Role, createdAt time.Time) *domain.AccessCode {
	return &domain.AccessCode{
		ID:        id.MustGenerate("code"),
		Code:      code,
		Role:      role,
		Label:     "test code",
		Active:    true,
		CreatedBy: "admin",
		CreatedAt: createdAt,
	}
}

func TestCodeCreateAndLookup(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	c := newTestCode("alpha-secret", domain.RoleMod, time.Now().UTC())
	require.NoError(t, store.CreateCode(ctx, c))

	byID, err := store.GetCode(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Code, byID.Code)
	assert.Equal(t, domain.RoleMod, byID.Role)

	byCode, err := store.GetCodeByCode(ctx, "alpha-secret")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byCode.ID)
}

func TestCreateCode_DuplicateCodeValue(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first := newTestCode("duplicate", domain.RoleUser, time.Now().UTC())
	require.NoError(t, store.CreateCode(ctx, first))

	second := newTestCode("duplicate", domain.RoleUser, time.Now().UTC())
	err := store.CreateCode(ctx, second)
	assert.True(t, errors.Is(err, ErrCodeExists))
}

func TestGetCode_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetCode(context.Background(), "code-missing")
	assert.True(t, errors.Is(err, ErrCodeNotFound))

	_, err = store.GetCodeByCode(context.Background(), "never-issued")
	assert.True(t, errors.Is(err, ErrCodeNotFound))
}

func TestUpdateCode_Revocation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	c := newTestCode("revocable", domain.RoleUser, time.Now().UTC())
	require.NoError(t, store.CreateCode(ctx, c))

	c.Active = false
	require.NoError(t, store.UpdateCode(ctx, c))

	loaded, err := store.GetCode(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Active)

	// Revoked codes stay resolvable by value; the caller decides what an
	// inactive code means.
	byCode, err := store.GetCodeByCode(ctx, "revocable")
	require.NoError(t, err)
	assert.False(t, byCode.Active)
}

func TestListCodes_ActiveFilterAndOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().UTC()

	oldest := newTestCode("code-a", domain.RoleUser, base.Add(-2*time.Hour))
	revoked := newTestCode("code-b", domain.RoleMod, base.Add(-1*time.Hour))
	revoked.Active = false
	newest := newTestCode("code-c", domain.RoleAdmin, base)

	for _, c := range []*domain.AccessCode{newest, oldest, revoked} {
		require.NoError(t, store.CreateCode(ctx, c))
	}

	all, err := store.ListCodes(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "code-a", all[0].Code)
	assert.Equal(t, "code-b", all[1].Code)
	assert.Equal(t, "code-c", all[2].Code)

	active, err := store.ListCodes(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "code-a", active[0].Code)
	assert.Equal(t, "code-c", active[1].Code)
}
