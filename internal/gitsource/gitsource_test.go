package gitsource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/MonaAghili/public-notes/internal/config"
)

// initOriginRepo creates a local repository with one committed note and
// returns its path plus a commit helper for later updates.
func initOriginRepo(t *testing.T) (string, func(name, content string)) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commit := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		wt, err := repo.Worktree()
		require.NoError(t, err)
		_, err = wt.Add(name)
		require.NoError(t, err)
		_, err = wt.Commit("add "+name, &git.CommitOptions{
			Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
		})
		require.NoError(t, err)
	}
	commit("hello.md", "# Hello\n")
	return dir, commit
}

func TestSync_MissingCheckout_Clones(t *testing.T) {
	origin, _ := initOriginRepo(t)
	src := New(config.SourceConfig{
		URL:       origin,
		Branch:    "master",
		Workspace: t.TempDir(),
	})

	dir, err := src.Sync()
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "hello.md"))
	require.NoError(t, err)
	require.Equal(t, "# Hello\n", string(content))
}

func TestSync_ExistingCheckout_PullsNewCommits(t *testing.T) {
	origin, commit := initOriginRepo(t)
	src := New(config.SourceConfig{
		URL:       origin,
		Branch:    "master",
		Workspace: t.TempDir(),
	})

	_, err := src.Sync()
	require.NoError(t, err)

	// Up to date pull is not an error.
	_, err = src.Sync()
	require.NoError(t, err)

	commit("again.md", "# Again\n")
	dir, err := src.Sync()
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "again.md"))
	require.NoError(t, err)
	require.Equal(t, "# Again\n", string(content))
}

func TestAuthMethod_Token_RequiresToken(t *testing.T) {
	src := New(config.SourceConfig{
		URL:  "https://example.com/notes.git",
		Auth: &config.AuthConfig{Type: "token"},
	})

	_, err := src.authMethod()
	require.Error(t, err)
}

func TestAuthMethod_Basic_BuildsCredentials(t *testing.T) {
	src := New(config.SourceConfig{
		URL:  "https://example.com/notes.git",
		Auth: &config.AuthConfig{Type: "basic", Username: "me", Password: "secret"},
	})

	method, err := src.authMethod()
	require.NoError(t, err)
	require.Contains(t, method.String(), "http-basic-auth")
}
