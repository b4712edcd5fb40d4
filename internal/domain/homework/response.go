// internal/domain/homework/response.go
package homework

import (
	"context"
	"fmt"
)

// StatusFetcher fetches raw homework statuses updated since fromDate (unix seconds).
type StatusFetcher interface {
	GetHomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}

// CheckResponse validates a decoded API response and returns the newest submission.
func CheckResponse(response any) (Submission, error) {
	if !truthy(response) {
		return nil, ErrEmptyResponse
	}

	envelope, ok := response.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, expected JSON object", ErrTypeMismatch, response)
	}

	// An empty homeworks list is falsy and lands here as well.
	if !truthy(envelope[KeyCurrentDate]) || !truthy(envelope[KeyHomeworks]) {
		return nil, ErrMissingKeys
	}

	homeworks, ok := envelope[KeyHomeworks].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, expected JSON array", ErrTypeMismatch, KeyHomeworks, envelope[KeyHomeworks])
	}

	newest, ok := homeworks[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: homework record is %T, expected JSON object", ErrTypeMismatch, homeworks[0])
	}
	return Submission(newest), nil
}

// ParseStatus builds the notification text for a submission.
func ParseStatus(s Submission) (string, error) {
	status, ok := s.Status()
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrInvalidStatus, s[KeyStatus])
	}
	verdict, ok := Verdicts[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	name := s.HomeworkName()
	if name == "" {
		return "", ErrMissingField
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
