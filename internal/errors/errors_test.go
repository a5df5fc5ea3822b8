package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNotesError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotesError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestNotesError_WithContext(t *testing.T) {
	err := New(CategoryGit, SeverityWarning, "clone failed").
		WithContext("repository", "test-repo").
		WithContext("branch", "main")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["repository"] != "test-repo" {
		t.Errorf("Context[repository] = %v, want test-repo", err.Context["repository"])
	}

	if err.Context["branch"] != "main" {
		t.Errorf("Context[branch] = %v, want main", err.Context["branch"])
	}
}

func TestIsCategory(t *testing.T) {
	notFoundErr := NoteNotFound("guides/setup")
	gitErr := New(CategoryGit, SeverityWarning, "git error")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"not_found error matches not_found category", notFoundErr, CategoryNotFound, true},
		{"not_found error doesn't match git category", notFoundErr, CategoryGit, false},
		{"git error matches git category", gitErr, CategoryGit, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	retryableErr := Retryable(CategoryGit, SeverityWarning, "pull timed out")
	nonRetryableErr := New(CategoryConfig, SeverityFatal, "invalid")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"retryable error", retryableErr, true},
		{"non-retryable error", nonRetryableErr, false},
		{"standard error", standardErr, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsRetryable(test.err)
			if result != test.expected {
				t.Errorf("IsRetryable() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("NoteNotFound", func(t *testing.T) {
		err := NoteNotFound("guides/setup")
		if err.Category != CategoryNotFound {
			t.Errorf("Category = %v, want %v", err.Category, CategoryNotFound)
		}
		if err.Context["slug"] != "guides/setup" {
			t.Errorf("Context[slug] = %v, want guides/setup", err.Context["slug"])
		}
	})

	t.Run("ReadFailed", func(t *testing.T) {
		cause := fmt.Errorf("permission denied")
		err := ReadFailed("/notes/a.md", cause)
		if err.Category != CategoryFileSystem {
			t.Errorf("Category = %v, want %v", err.Category, CategoryFileSystem)
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
	})

	t.Run("InvalidSlug", func(t *testing.T) {
		err := InvalidSlug("../etc/passwd", "parent directory segment")
		if err.Category != CategoryValidation {
			t.Errorf("Category = %v, want %v", err.Category, CategoryValidation)
		}
		if err.Context["slug"] != "../etc/passwd" {
			t.Errorf("Context[slug] = %v, want ../etc/passwd", err.Context["slug"])
		}
		if err.Context["reason"] != "parent directory segment" {
			t.Errorf("Context[reason] = %v, want parent directory segment", err.Context["reason"])
		}
	})

	t.Run("QueryTooLarge", func(t *testing.T) {
		err := QueryTooLarge(900, 512)
		if err.Category != CategoryQuery {
			t.Errorf("Category = %v, want %v", err.Category, CategoryQuery)
		}
		if err.Context["length"] != 900 {
			t.Errorf("Context[length] = %v, want 900", err.Context["length"])
		}
	})
}

func TestStatusCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", InvalidSlug("a!b", "bad character"), http.StatusBadRequest},
		{"not found", NoteNotFound("missing"), http.StatusNotFound},
		{"query too large", QueryTooLarge(1000, 512), http.StatusRequestEntityTooLarge},
		{"standard error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := StatusCodeFor(test.err)
			if result != test.expected {
				t.Errorf("StatusCodeFor() = %d, want %d", result, test.expected)
			}
		})
	}
}
