package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAppendRecent_RoundTrip(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	require.NoError(t, j.Append(ctx, Entry{
		EventID:    uuid.NewString(),
		Kind:       "modify",
		Slug:       "guides/setup",
		Status:     StatusOK,
		DurationMS: 12,
	}))
	require.NoError(t, j.Append(ctx, Entry{
		EventID:    uuid.NewString(),
		Kind:       "remove",
		Slug:       "old/note",
		Status:     StatusFailed,
		Error:      "tree rebuild failed",
		DurationMS: 3,
	}))

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	require.Equal(t, "remove", entries[0].Kind)
	require.Equal(t, "tree rebuild failed", entries[0].Error)
	require.Equal(t, "modify", entries[1].Kind)
	require.Equal(t, "guides/setup", entries[1].Slug)
	require.False(t, entries[1].Timestamp.IsZero())
}

func TestRecent_LimitsCount(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Append(ctx, Entry{EventID: uuid.NewString(), Kind: "add", Status: StatusOK}))
	}

	entries, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestOpen_FileBacked_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, Entry{EventID: uuid.NewString(), Kind: "reload", Status: StatusOK}))
	require.NoError(t, j.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "reload", entries[0].Kind)
}

func TestNilJournal_AllOperationsSafe(t *testing.T) {
	var j *Journal
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, Entry{Kind: "add", Status: StatusOK}))
	entries, err := j.Recent(ctx, 5)
	require.NoError(t, err)
	require.Nil(t, entries)
	require.NoError(t, j.Close())
}
