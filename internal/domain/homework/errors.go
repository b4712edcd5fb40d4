// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// Error kinds of a polling cycle. Callers match them with errors.Is.
var (
	ErrEndpointUnavailable = errors.New("homework API endpoint unavailable")
	ErrBadAPIResponse      = errors.New("bad homework API response")
	ErrResponseDecode      = errors.New("homework API response is not valid JSON")
	ErrEmptyResponse       = errors.New("no response received from homework API")
	ErrTypeMismatch        = errors.New("unexpected data type in homework API response")
	ErrMissingKeys         = errors.New("homework API response lacks \"homeworks\" or \"current_date\"")
	ErrInvalidStatus       = errors.New("invalid homework status")
	ErrMissingField        = errors.New("homework record lacks \"homework_name\"")
)

// APIStatusError is returned when the API answers with a non-200 status code.
type APIStatusError struct {
	StatusCode int
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("%s: status code %d", ErrBadAPIResponse, e.StatusCode)
}

// Is lets errors.Is(err, ErrBadAPIResponse) match any status error.
func (e *APIStatusError) Is(target error) bool {
	return target == ErrBadAPIResponse
}

var errorKinds = []struct {
	err  error
	name string
}{
	{ErrEndpointUnavailable, "transport"},
	{ErrBadAPIResponse, "bad_status"},
	{ErrResponseDecode, "decode"},
	{ErrEmptyResponse, "missing_response"},
	{ErrTypeMismatch, "type_mismatch"},
	{ErrMissingKeys, "missing_keys"},
	{ErrInvalidStatus, "invalid_status"},
	{ErrMissingField, "missing_field"},
}

// ErrorKind names the kind of a cycle error for logging, or "unknown".
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}
