package slug

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MonaAghili/public-notes/internal/errors"
)

func TestFromPath_NestedMarkdownFile_StripsExtension(t *testing.T) {
	require.Equal(t, "guides/setup", FromPath(filepath.Join("guides", "setup.md")))
}

func TestFromPath_AlternateExtension_StripsExtension(t *testing.T) {
	require.Equal(t, "notes/ideas", FromPath("notes/ideas.markdown"))
	require.Equal(t, "notes/ideas", FromPath("notes/ideas.mkd"))
}

func TestFromPath_NoRecognizedExtension_LeftIntact(t *testing.T) {
	require.Equal(t, "assets/diagram.png", FromPath("assets/diagram.png"))
}

func TestFromPath_CaseAndWhitespace_PassThrough(t *testing.T) {
	require.Equal(t, "Guides/My Note", FromPath("Guides/My Note.md"))
}

func TestToPath_RoundTrip_RestoresCanonicalPath(t *testing.T) {
	paths := []string{"readme.md", "guides/setup.md", "a/b/c/deep.md"}
	for _, p := range paths {
		require.Equal(t, p, ToPath(FromPath(p)))
	}
}

func TestToPath_AlternateExtension_CanonicalizesToMD(t *testing.T) {
	require.Equal(t, "notes/ideas.md", ToPath(FromPath("notes/ideas.markdown")))
}

func TestValidate_WellFormedSlugs_Accepted(t *testing.T) {
	for _, s := range []string{"readme", "guides/setup", "a/b/c", "notes_2024-01", "A/B-c_d"} {
		require.NoError(t, Validate(s), "slug %q", s)
	}
}

func TestValidate_ParentSegment_Rejected(t *testing.T) {
	err := Validate("../etc/passwd")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestValidate_DisallowedCharacters_Rejected(t *testing.T) {
	for _, s := range []string{"notes with space", "a.b", "tilde~", "q?x", "emojié"} {
		err := Validate(s)
		require.Error(t, err, "slug %q", s)
		require.True(t, errors.IsCategory(err, errors.CategoryValidation), "slug %q", s)
	}
}

func TestValidate_Empty_Rejected(t *testing.T) {
	require.Error(t, Validate(""))
}

func TestIsNotePath_KnownExtensions(t *testing.T) {
	require.True(t, IsNotePath("a.md"))
	require.True(t, IsNotePath("a.MD"))
	require.True(t, IsNotePath("dir/b.markdown"))
	require.False(t, IsNotePath("image.png"))
	require.False(t, IsNotePath("noext"))
}
