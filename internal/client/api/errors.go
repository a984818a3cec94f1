package api

import (
	"fmt"
	"net/http"

	"github.com/haktiv/evidencekeeper/internal/common"
)

// HTTPError is a completed request that came back non-2xx.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// Unwrap maps auth statuses onto the shared sentinel so callers can use
// errors.Is(err, common.ErrUnauthorized) without inspecting codes.
func (e *HTTPError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return common.ErrUnauthorized
	}
	return nil
}
