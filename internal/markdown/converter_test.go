package markdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConvert_PlainBody_RendersHTML(t *testing.T) {
	c := NewConverter()

	meta, out, err := c.Convert([]byte("# Hello\n\nSome *text*.\n"))
	require.NoError(t, err)
	require.Empty(t, meta.Title)
	require.Contains(t, string(out), "<h1")
	require.Contains(t, string(out), "<em>text</em>")
}

func TestConvert_FrontMatter_DecodesWellKnownFields(t *testing.T) {
	c := NewConverter()
	source := []byte(`---
title: Setup Guide
description: How to get started
date: 2024-03-01T00:00:00Z
tags: [guide, setup]
---
Body here.
`)

	meta, out, err := c.Convert(source)
	require.NoError(t, err)
	require.Equal(t, "Setup Guide", meta.Title)
	require.Equal(t, "How to get started", meta.Description)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), meta.Date)
	require.Equal(t, []string{"guide", "setup"}, meta.Tags)
	require.Contains(t, string(out), "Body here.")
	require.NotContains(t, string(out), "title:")
}

func TestConvert_UnknownFields_LandInCustom(t *testing.T) {
	c := NewConverter()
	source := []byte(`---
title: T
weight: 3
author: ada
---
x
`)

	meta, _, err := c.Convert(source)
	require.NoError(t, err)
	require.Equal(t, 3, meta.Custom["weight"])
	require.Equal(t, "ada", meta.Custom["author"])
	require.NotContains(t, meta.Custom, "title")
}

func TestConvert_MalformedFrontMatter_ReturnsError(t *testing.T) {
	c := NewConverter()

	_, _, err := c.Convert([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)
}

func TestConvert_ScriptTag_Sanitized(t *testing.T) {
	c := NewConverter()

	_, out, err := c.Convert([]byte("hello <script>alert(1)</script> world\n"))
	require.NoError(t, err)
	require.NotContains(t, string(out), "<script>")
	require.NotContains(t, string(out), "alert(1)")
}

func TestConvert_GFMTable_Renders(t *testing.T) {
	c := NewConverter()
	source := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	_, out, err := c.Convert(source)
	require.NoError(t, err)
	require.Contains(t, string(out), "<table>")
}

func TestConvert_HeadingID_SurvivesSanitization(t *testing.T) {
	c := NewConverter()

	_, out, err := c.Convert([]byte("## Install Steps\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), `id="install-steps"`)
}

func TestExtractText_StripsMarkupAndCollapsesWhitespace(t *testing.T) {
	text := ExtractText([]byte("<h1>Hello</h1>\n<p>from <em>nested</em>\n  markup</p>"))
	require.Equal(t, "Hello from nested markup", text)
}

func TestExtractText_EmptyInput_ReturnsEmpty(t *testing.T) {
	require.Equal(t, "", ExtractText(nil))
	require.Equal(t, "", ExtractText([]byte("   \n  ")))
}
