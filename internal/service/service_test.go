package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nabilmhassnimain-alt/mtpt-server/internal/auth"
	"github.com/nabilmhassnimain-alt/mtpt-server/internal/store"
)

// testServices bundles the full service stack over a temp store.
type testServices struct {
	store      *store.Store
	vocabulary *VocabularyService
	texts      *TextService
	codes      *CodeService
	auth       *AuthService
}

// setupTestServices wires all services against a temp database.
func setupTestServices(t *testing.T) (*testServices, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mtpt-service-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	testStore, err := store.New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, testStore)

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	tokenService, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	vocabulary := NewVocabularyService(testStore, logger)
	texts := NewTextService(testStore, vocabulary, logger)
	codes := NewCodeService(testStore, []string{"static-admin"}, []string{"static-user"}, logger)
	authService := NewAuthService(codes, tokenService, logger)

	svcs := &testServices{
		store:      testStore,
		vocabulary: vocabulary,
		texts:      texts,
		codes:      codes,
		auth:       authService,
	}

	cleanup := func() {
		_ = testStore.Close()    //nolint:errcheck // Test cleanup
		_ = os.RemoveAll(tmpDir) //nolint:errcheck // Test cleanup
	}

	return svcs, cleanup
}
