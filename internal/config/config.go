// Package config loads and validates the notes.yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MonaAghili/public-notes/internal/errors"
)

// Config is the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Output  OutputConfig  `yaml:"output"`
	Journal JournalConfig `yaml:"journal"`
	Source  *SourceConfig `yaml:"source,omitempty"`
}

// ContentConfig locates the notes on disk.
type ContentConfig struct {
	Root string `yaml:"root"`
}

// SiteConfig describes the rendered site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// ServerConfig configures the long-running service. ResyncInterval is a Go
// duration string ("15m"); empty disables the periodic resync.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	Metrics        bool   `yaml:"metrics"`
	ResyncInterval string `yaml:"resync_interval,omitempty"`
	NATSURL        string `yaml:"nats_url,omitempty"`
	NATSSubject    string `yaml:"nats_subject,omitempty"`

	resyncEvery time.Duration
}

// ResyncEvery returns the parsed resync interval, zero when disabled.
func (s ServerConfig) ResyncEvery() time.Duration { return s.resyncEvery }

// OutputConfig configures the static export.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// JournalConfig configures the sync journal. An empty path disables it.
type JournalConfig struct {
	Path string `yaml:"path,omitempty"`
}

// SourceConfig points the index at a git repository instead of a plain
// directory. ContentPath is the notes directory inside the checkout.
type SourceConfig struct {
	URL         string      `yaml:"url"`
	Branch      string      `yaml:"branch,omitempty"`
	Workspace   string      `yaml:"workspace,omitempty"`
	ContentPath string      `yaml:"content_path,omitempty"`
	Auth        *AuthConfig `yaml:"auth,omitempty"`
}

// AuthConfig is the git authentication block.
type AuthConfig struct {
	Type     string `yaml:"type"` // "token", "basic" or "ssh"
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
	KeyPath  string `yaml:"key_path,omitempty"`
}

// Load reads the configuration file, expanding ${VAR} references from the
// process environment. A .env or .env.local file in the working directory
// is loaded first; existing environment variables are never overridden.
func Load(configPath string) (*Config, error) {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.ConfigInvalid("unreadable", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.ConfigInvalid("yaml decode failed", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Content.Root == "" {
		c.Content.Root = "./notes"
	}
	if c.Site.Title == "" {
		c.Site.Title = "Notes"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.NATSSubject == "" {
		c.Server.NATSSubject = "notes.changes"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./public"
	}
	if c.Source != nil {
		if c.Source.Branch == "" {
			c.Source.Branch = "main"
		}
		if c.Source.Workspace == "" {
			c.Source.Workspace = ".notes-workspace"
		}
	}
}

func (c *Config) validate() error {
	if c.Server.ResyncInterval != "" {
		d, err := time.ParseDuration(c.Server.ResyncInterval)
		if err != nil {
			return errors.ConfigInvalid("resync_interval is not a valid duration", err)
		}
		if d <= 0 {
			return errors.ConfigInvalid("resync_interval must be positive", nil)
		}
		c.Server.resyncEvery = d
	}
	if c.Source != nil && c.Source.URL == "" {
		return errors.ConfigInvalid("source.url is required when source is set", nil)
	}
	if c.Source != nil && c.Source.Auth != nil {
		switch c.Source.Auth.Type {
		case "token", "basic", "ssh":
		default:
			return errors.ConfigInvalid(
				fmt.Sprintf("unknown source.auth.type %q", c.Source.Auth.Type), nil)
		}
	}
	return nil
}

// ContentRoot resolves the directory the index should watch: the configured
// root, or the content path inside the git checkout when a source is set.
func (c *Config) ContentRoot(checkoutDir string) string {
	if c.Source == nil {
		return c.Content.Root
	}
	if c.Source.ContentPath == "" {
		return checkoutDir
	}
	return filepath.Join(checkoutDir, c.Source.ContentPath)
}

const exampleConfig = `# public-notes configuration
content:
  root: ./notes

site:
  title: My Notes
  description: A published notes collection
  base_url: https://notes.example.com

server:
  addr: ":8080"
  metrics: true
  # resync_interval: 15m
  # nats_url: nats://localhost:4222
  # nats_subject: notes.changes

output:
  directory: ./public
  clean: true

# journal:
#   path: ./notes-journal.db

# Index a git repository instead of a local directory:
# source:
#   url: https://example.com/me/notes.git
#   branch: main
#   content_path: docs
#   auth:
#     type: token
#     token: ${NOTES_GIT_TOKEN}
`

// Init writes a commented example configuration. Refuses to overwrite an
// existing file unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal,
			"configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return errors.ConfigInvalid("writing example config failed", err)
	}
	return nil
}
