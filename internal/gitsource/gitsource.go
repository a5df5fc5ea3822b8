// Package gitsource checks out a git repository holding the notes so the
// index can run against a remote collection. Sync clones on first use and
// pulls afterwards; the checkout lives in a workspace directory the caller
// chooses.
package gitsource

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/MonaAghili/public-notes/internal/config"
	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/logfields"
)

// Source manages the checkout for one configured repository.
type Source struct {
	cfg config.SourceConfig
}

// New creates a Source from the configuration block.
func New(cfg config.SourceConfig) *Source {
	return &Source{cfg: cfg}
}

// Dir returns the checkout directory inside the workspace.
func (s *Source) Dir() string {
	return filepath.Join(s.cfg.Workspace, "checkout")
}

// Sync makes the checkout current: clone when missing, pull when present.
// It returns the checkout directory.
func (s *Source) Sync() (string, error) {
	dir := s.Dir()
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		if err := s.pull(dir); err != nil {
			return "", err
		}
		return dir, nil
	}
	if err := s.clone(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Source) clone(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.GitCloneError(s.cfg.URL, err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return errors.GitCloneError(s.cfg.URL, err)
	}

	opts := &git.CloneOptions{
		URL:          s.cfg.URL,
		SingleBranch: true,
	}
	if s.cfg.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + s.cfg.Branch)
	}
	auth, err := s.authMethod()
	if err != nil {
		return err
	}
	opts.Auth = auth

	repo, err := git.PlainClone(dir, false, opts)
	if err != nil {
		return errors.GitCloneError(s.cfg.URL, err)
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("notes repository cloned",
			slog.String("url", s.cfg.URL),
			slog.String("commit", ref.Hash().String()[:8]),
			logfields.Path(dir))
	}
	return nil
}

func (s *Source) pull(dir string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return errors.GitPullError(s.cfg.URL, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return errors.GitPullError(s.cfg.URL, err)
	}

	opts := &git.PullOptions{RemoteName: "origin", SingleBranch: true}
	auth, err := s.authMethod()
	if err != nil {
		return err
	}
	opts.Auth = auth

	err = worktree.Pull(opts)
	switch err {
	case nil:
		if ref, herr := repo.Head(); herr == nil {
			slog.Info("notes repository updated",
				slog.String("commit", ref.Hash().String()[:8]))
		}
	case git.NoErrAlreadyUpToDate:
		slog.Debug("notes repository already up to date", slog.String("url", s.cfg.URL))
	default:
		return errors.GitPullError(s.cfg.URL, err)
	}
	return nil
}

// authMethod maps the auth config block to a go-git transport method. A nil
// method means anonymous access.
func (s *Source) authMethod() (transport.AuthMethod, error) {
	auth := s.cfg.Auth
	if auth == nil {
		return nil, nil
	}

	switch auth.Type {
	case "token":
		if auth.Token == "" {
			return nil, errors.ConfigInvalid("token auth requires source.auth.token", nil)
		}
		return &githttp.BasicAuth{Username: "token", Password: auth.Token}, nil

	case "basic":
		if auth.Username == "" || auth.Password == "" {
			return nil, errors.ConfigInvalid("basic auth requires username and password", nil)
		}
		return &githttp.BasicAuth{Username: auth.Username, Password: auth.Password}, nil

	case "ssh":
		keyPath := auth.KeyPath
		if keyPath == "" {
			keyPath = filepath.Join(os.Getenv("HOME"), ".ssh", "id_rsa")
		}
		keys, err := gitssh.NewPublicKeysFromFile("git", keyPath, "")
		if err != nil {
			return nil, errors.ConfigInvalid("loading SSH key failed", err)
		}
		return keys, nil

	default:
		return nil, errors.ConfigInvalid("unsupported source.auth.type "+auth.Type, nil)
	}
}
