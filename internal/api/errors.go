package api

import (
	"errors"
	"net/http"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

// Failure taxonomy. Every client method wraps its failures with one of these
// so callers can classify with errors.Is.
var (
	ErrNotFound              = errors.New("not found")
	ErrCreationFailed        = errors.New("query creation failed")
	ErrUpdateFailed          = errors.New("query update failed")
	ErrMetaFetchFailed       = errors.New("query metadata fetch failed")
	ErrResultsFetchFailed    = errors.New("results fetch failed")
	ErrDetailNotFound        = errors.New("document not found")
	ErrDetailFetchFailed     = errors.New("document fetch failed")
	ErrLabelsFetchFailed     = errors.New("labels fetch failed")
	ErrSuggestionFetchFailed = errors.New("suggestion fetch failed")
)

// StatusCode returns the HTTP status of a failed request, or 0 when the
// request never produced a response.
func StatusCode(err error) int {
	var httpErr *ghAPI.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func isNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Retryable reports whether a failed read is worth retrying: transport
// errors and 5xx responses are, client errors are not.
func Retryable(err error) bool {
	code := StatusCode(err)
	return code == 0 || code >= 500
}
