package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/tokenstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credentials.json")
}

func TestFileStore_SetGetSymmetry(t *testing.T) {
	s := tokenstore.New(storePath(t), zap.NewNop())

	cred := &domain.Credential{AccessToken: "tok-123", TokenType: "bearer"}
	require.NoError(t, s.Set(cred))

	got := s.Get()
	require.NotNil(t, got)
	assert.Equal(t, "tok-123", got.AccessToken)
	assert.Equal(t, "bearer", got.TokenType)
}

func TestFileStore_GetEmpty(t *testing.T) {
	s := tokenstore.New(storePath(t), zap.NewNop())
	assert.Nil(t, s.Get())
}

func TestFileStore_Clear(t *testing.T) {
	path := storePath(t)
	s := tokenstore.New(path, zap.NewNop())

	require.NoError(t, s.Set(&domain.Credential{AccessToken: "tok", TokenType: "bearer"}))
	s.Clear()

	assert.Nil(t, s.Get())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "credential file should be removed")
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	path := storePath(t)

	first := tokenstore.New(path, zap.NewNop())
	require.NoError(t, first.Set(&domain.Credential{AccessToken: "persisted", TokenType: "bearer"}))

	// New store instance simulates a process restart.
	second := tokenstore.New(path, zap.NewNop())
	got := second.Get()
	require.NotNil(t, got)
	assert.Equal(t, "persisted", got.AccessToken)
}

func TestFileStore_CorruptFileTreatedAsAbsent(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := tokenstore.New(path, zap.NewNop())
	assert.Nil(t, s.Get())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt file should be removed")
}

func TestFileStore_SetReplacesWholesale(t *testing.T) {
	s := tokenstore.New(storePath(t), zap.NewNop())

	require.NoError(t, s.Set(&domain.Credential{AccessToken: "old", TokenType: "bearer"}))
	require.NoError(t, s.Set(&domain.Credential{AccessToken: "new", TokenType: "bearer"}))

	assert.Equal(t, "new", s.Get().AccessToken)
}
