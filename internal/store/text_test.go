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

func newTestText(primary string, status domain.Status, createdAt time.Time) *domain.Text {
	return &domain.Text{
		ID:           id.MustGenerate("text"),
		Primary:      primary,
		Translations: map[string]string{},
		Tags:         []string{},
		Playlists:    []string{},
		Status:       status,
		CreatedAt:    createdAt,
	}
}

func TestTextCRUD(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	text := newTestText("Guten Morgen", domain.StatusActive, time.Now().UTC())
	text.Translations["es"] = "Buenos días"
	text.Tags = []string{"greeting"}

	require.NoError(t, store.CreateText(ctx, text))

	loaded, err := store.GetText(ctx, text.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guten Morgen", loaded.Primary)
	assert.Equal(t, "Buenos días", loaded.Translations["es"])
	assert.Equal(t, []string{"greeting"}, loaded.Tags)

	loaded.Primary = "Guten Abend"
	require.NoError(t, store.UpdateText(ctx, loaded))

	updated, err := store.GetText(ctx, text.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guten Abend", updated.Primary)

	deleted, err := store.DeleteText(ctx, text.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.GetText(ctx, text.ID)
	assert.True(t, errors.Is(err, ErrTextNotFound))
}

func TestGetText_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetText(context.Background(), "text-missing")
	assert.True(t, errors.Is(err, ErrTextNotFound))
}

func TestUpdateText_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	text := newTestText("never stored", domain.StatusActive, time.Now().UTC())
	err := store.UpdateText(context.Background(), text)
	assert.True(t, errors.Is(err, ErrTextNotFound))
}

func TestDeleteText_Missing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	deleted, err := store.DeleteText(context.Background(), "text-missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListTexts_FilterAndOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().UTC()

	oldest := newTestText("first", domain.StatusActive, base.Add(-2*time.Hour))
	middle := newTestText("second", domain.StatusPending, base.Add(-1*time.Hour))
	newest := newTestText("third", domain.StatusActive, base)

	// Insert out of order; listing sorts by creation time.
	for _, text := range []*domain.Text{newest, oldest, middle} {
		require.NoError(t, store.CreateText(ctx, text))
	}

	all, err := store.ListTexts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Primary)
	assert.Equal(t, "second", all[1].Primary)
	assert.Equal(t, "third", all[2].Primary)

	active, err := store.ListTexts(ctx, domain.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Primary)
	assert.Equal(t, "third", active[1].Primary)

	pending, err := store.ListTexts(ctx, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Primary)
}
