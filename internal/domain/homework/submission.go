// internal/domain/homework/submission.go
package homework

import (
	"encoding/json"
	"fmt"
)

// Status is the review state of a submission as reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps every known status to the text shown to the user.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Record keys of a submission returned by the API.
const (
	KeyID              = "id"
	KeyStatus          = "status"
	KeyHomeworkName    = "homework_name"
	KeyReviewerComment = "reviewer_comment"
	KeyDateUpdated     = "date_updated"
	KeyLessonName      = "lesson_name"
)

// Envelope keys of the API response.
const (
	KeyCurrentDate = "current_date"
	KeyHomeworks   = "homeworks"
)

// Submission is a single homework record exactly as decoded from the API.
// Only status and homework_name are consumed; the rest is passed through untouched.
type Submission map[string]any

// Status returns the raw status value and whether it is a string at all.
func (s Submission) Status() (Status, bool) {
	v, ok := s[KeyStatus].(string)
	return Status(v), ok
}

// HomeworkName returns homework_name rendered as text, or "" when it is falsy.
func (s Submission) HomeworkName() string {
	v := s[KeyHomeworkName]
	if !truthy(v) {
		return ""
	}
	if name, ok := v.(string); ok {
		return name
	}
	return fmt.Sprint(v)
}

// truthy reports whether a decoded JSON value carries data: null, false, zero,
// empty strings, arrays and objects are all considered empty.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val != ""
		}
		return f != 0
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case Submission:
		return len(val) > 0
	default:
		return true
	}
}
