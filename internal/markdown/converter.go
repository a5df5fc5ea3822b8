// Package markdown turns raw note bytes into sanitized HTML plus decoded
// front matter. It is the only place markdown grammar and sanitization
// policy live; callers treat the output as final.
package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// FrontMatter is the decoded YAML header of a note. Well-known fields are
// typed; everything else lands in Custom via the inline map.
type FrontMatter struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Date        time.Time      `yaml:"date"`
	Tags        []string       `yaml:"tags"`
	Custom      map[string]any `yaml:",inline"`
}

// Converter renders note markdown to sanitized HTML. The converter is
// stateless after construction so a single instance can be shared across
// goroutines without locking.
type Converter struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewConverter builds a converter with GFM extensions, auto heading IDs and
// a UGC sanitization policy. The UGC policy keeps heading id attributes, so
// anchor links generated by the heading ID pass survive sanitization.
func NewConverter() *Converter {
	return &Converter{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Convert splits front matter from source, renders the markdown body and
// sanitizes the result. Raw HTML in the source never survives: goldmark
// drops it by default and the policy scrubs whatever the renderer emits.
func (c *Converter) Convert(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
	}

	var buf bytes.Buffer
	if err := c.engine.Convert(body, &buf); err != nil {
		return FrontMatter{}, nil, fmt.Errorf("render markdown: %w", err)
	}

	return meta, c.policy.SanitizeBytes(buf.Bytes()), nil
}
