package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionPath = "/home/coach/.life-coach/session.toml"

func newMemStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Date(2026, 10, 19, 21, 30, 0, 0, time.Local)).Maybe()

	fs := afero.NewMemMapFs()
	store, err := NewStoreWithFs(fs, sessionPath, clock)
	require.NoError(t, err)
	return store, fs
}

func TestStoreLoadMissingSession(t *testing.T) {
	store, _ := newMemStore(t)

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestStoreSaveAndLoadRoundTrip(t *testing.T) {
	store, fs := newMemStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, domain.JournalSnapshot{
		JournalText:    "오늘 힘들었다",
		ReflectionText: "내일은 나아질 것",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026년 10월 19일", saved.Date)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	info, err := fs.Stat(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionFileMode), info.Mode().Perm())

	leftovers, err := afero.Glob(fs, filepath.Join(filepath.Dir(sessionPath), ".session-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStoreSaveKeepsExplicitDate(t *testing.T) {
	store, _ := newMemStore(t)

	saved, err := store.Save(context.Background(), domain.JournalSnapshot{
		Date:           "2026년 01월 02일",
		JournalText:    "j",
		ReflectionText: "r",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026년 01월 02일", saved.Date)
}

func TestStoreSaveNormalizesToNFC(t *testing.T) {
	store, _ := newMemStore(t)
	decomposed := "\u1112\u1161\u11ab" // 한 as conjoining jamo

	saved, err := store.Save(context.Background(), domain.JournalSnapshot{
		JournalText:    decomposed,
		ReflectionText: "회고",
	})
	require.NoError(t, err)
	assert.Equal(t, "한", saved.JournalText)
}

func TestStoreSaveRejectsBlankEntries(t *testing.T) {
	cases := map[string]domain.JournalSnapshot{
		"empty journal":      {ReflectionText: "회고"},
		"blank journal":      {JournalText: "  \n", ReflectionText: "회고"},
		"empty reflection":   {JournalText: "저널"},
		"whitespace reflect": {JournalText: "저널", ReflectionText: "\t"},
	}

	for name, snapshot := range cases {
		t.Run(name, func(t *testing.T) {
			store, fs := newMemStore(t)

			_, err := store.Save(context.Background(), snapshot)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))

			exists, err := afero.Exists(fs, sessionPath)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestStoreLoadRejectsNewerSchema(t *testing.T) {
	store, fs := newMemStore(t)
	require.NoError(t, fs.MkdirAll(filepath.Dir(sessionPath), 0o700))
	require.NoError(t, afero.WriteFile(fs, sessionPath, []byte("version = 99\n"), 0o600))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported session schema version")
}

func TestStoreClear(t *testing.T) {
	store, _ := newMemStore(t)
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))

	_, err := store.Save(ctx, domain.JournalSnapshot{JournalText: "j", ReflectionText: "r"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	store, _ := newMemStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
