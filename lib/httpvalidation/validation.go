package httpvalidation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cyverse-ops/atmoctl/constants"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
)

// Validate HTTP response.
//
// Returns a sentinel error for statuses callers branch on, and a generic
// error for everything else non-2xx.
func ValidateResponse(res *http.Response) error {
	// Check response status
	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}

	// Handle all other bad response status codes
	if res.StatusCode >= 300 {
		return fmt.Errorf("%s (HTTP %d)", constants.ErrMsgInternal, res.StatusCode)
	}

	return nil
}
