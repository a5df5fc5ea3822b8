package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *NotesError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(reason string, cause error) *NotesError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("reason", reason)
}

// Input validation errors

func InvalidSlug(slug, reason string) *NotesError {
	return New(CategoryValidation, SeverityWarning, "invalid slug").
		WithContext("slug", slug).
		WithContext("reason", reason)
}

func QueryTooLarge(length, limit int) *NotesError {
	return New(CategoryQuery, SeverityWarning, "search query too large").
		WithContext("length", length).
		WithContext("limit", limit)
}

// Content errors

func NoteNotFound(slug string) *NotesError {
	return New(CategoryNotFound, SeverityWarning, "note not found").
		WithContext("slug", slug)
}

func ReadFailed(path string, cause error) *NotesError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "reading note failed").
		WithContext("path", path)
}

func ParseFailed(path string, cause error) *NotesError {
	return Wrap(cause, CategoryParse, SeverityError, "parsing note failed").
		WithContext("path", path)
}

func WalkFailed(root string, cause error) *NotesError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "content directory walk failed").
		WithContext("root", root)
}

func ExportFailed(path string, cause error) *NotesError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "writing export output failed").
		WithContext("path", path)
}

// Git errors

func GitCloneError(repo string, cause error) *NotesError {
	return Wrap(cause, CategoryGit, SeverityFatal, "repository clone failed").
		WithContext("repository", repo)
}

func GitPullError(repo string, cause error) *NotesError {
	return WrapRetryable(cause, CategoryGit, SeverityWarning, "repository pull failed").
		WithContext("repository", repo)
}

// Internal errors

func InternalError(message string, cause error) *NotesError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
