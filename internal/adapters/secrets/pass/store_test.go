package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", domain.CredentialKey}, args)
			assert.Equal(t, "VALIDKEY\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), domain.CredentialKey, "VALIDKEY"))
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", domain.CredentialKey}, args)
			assert.Empty(t, input)
			return "VALIDKEY\r\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), domain.CredentialKey)
	require.NoError(t, err)
	assert.Equal(t, "VALIDKEY", value)
}

func TestStoreGetMapsMissingEntryToSecretNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "Error: life-coach/geminiApiKey is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), domain.CredentialKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), domain.CredentialKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreDeleteToleratesMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", domain.CredentialKey}, args)
			return "", "Error: life-coach/geminiApiKey is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), domain.CredentialKey))
}
