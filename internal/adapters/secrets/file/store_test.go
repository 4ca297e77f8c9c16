package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFs(afero.NewMemMapFs(), "/secrets")
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "deep traversal", key: "../../secret", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripOnMemFs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store := NewStoreWithFs(fs, "/secrets")

	require.NoError(t, store.Put(context.Background(), domain.CredentialKey, "VALIDKEY"))
	require.NoError(t, store.Put(context.Background(), domain.CredentialKey, "NEWKEY"))

	got, err := store.Get(context.Background(), domain.CredentialKey)
	require.NoError(t, err)
	assert.Equal(t, "NEWKEY", got)

	leftovers, err := afero.Glob(fs, filepath.Join("/secrets", filepath.Dir(domain.CredentialKey), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStorePutSetsOwnerOnlyPermissionsOnDisk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), domain.CredentialKey, "top-secret"))

	info, err := os.Stat(filepath.Join(root, domain.CredentialKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())
}

func TestStoreGetMissingKeyReturnsSecretNotFound(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFs(afero.NewMemMapFs(), "/secrets")

	_, err := store.Get(context.Background(), domain.CredentialKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFs(afero.NewMemMapFs(), "/secrets")

	require.NoError(t, store.Delete(context.Background(), domain.CredentialKey))
	require.NoError(t, store.Delete(context.Background(), domain.CredentialKey))
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStoreWithFs(afero.NewMemMapFs(), "/secrets")
	assert.ErrorIs(t, store.Put(ctx, domain.CredentialKey, "v"), context.Canceled)
}
