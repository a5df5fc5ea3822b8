package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// HTTPErrorResponse is the JSON body written for failed API requests.
type HTTPErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusCodeFor maps an error to an HTTP status code.
func StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch GetCategory(err) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryQuery:
		return http.StatusRequestEntityTooLarge
	case CategoryConfig:
		return http.StatusUnprocessableEntity
	case CategoryGit, CategoryFileSystem, CategoryParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTP writes err as a JSON error response with the mapped status code.
// Internal detail (wrapped causes) is not exposed; only the message and
// category reach the client.
func WriteHTTP(w http.ResponseWriter, err error) {
	code := StatusCodeFor(err)

	body := HTTPErrorResponse{
		Status:    "error",
		Category:  string(GetCategory(err)),
		Timestamp: time.Now().UTC(),
	}
	if ne, ok := err.(*NotesError); ok {
		body.Error = ne.Message
	} else {
		body.Error = http.StatusText(code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
