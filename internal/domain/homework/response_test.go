package homework

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestCheckResponse_ReturnsFirstHomework(t *testing.T) {
	response := decode(t, `{
		"current_date": 1000,
		"homeworks": [
			{"id": 2, "status": "approved", "homework_name": "hw2", "reviewer_comment": "ok"},
			{"id": 1, "status": "rejected", "homework_name": "hw1"}
		]
	}`)

	got, err := CheckResponse(response)
	require.NoError(t, err)

	first := response.(map[string]any)["homeworks"].([]any)[0]
	assert.Equal(t, Submission(first.(map[string]any)), got)
	assert.Equal(t, "hw2", got[KeyHomeworkName])
	assert.Equal(t, "ok", got[KeyReviewerComment])
}

func TestCheckResponse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		response any
		expected error
	}{
		{"Nil", nil, ErrEmptyResponse},
		{"EmptyObject", map[string]any{}, ErrEmptyResponse},
		{"EmptyArray", []any{}, ErrEmptyResponse},
		{"ArrayInsteadOfObject", []any{map[string]any{"status": "approved"}}, ErrTypeMismatch},
		{"StringInsteadOfObject", "homeworks", ErrTypeMismatch},
		{"NumberInsteadOfObject", float64(42), ErrTypeMismatch},
		{"MissingCurrentDate", map[string]any{"homeworks": []any{map[string]any{}}}, ErrMissingKeys},
		{"MissingHomeworks", map[string]any{"current_date": float64(1000)}, ErrMissingKeys},
		{"ZeroCurrentDate", map[string]any{"current_date": float64(0), "homeworks": []any{map[string]any{}}}, ErrMissingKeys},
		{"NullHomeworks", map[string]any{"current_date": float64(1000), "homeworks": nil}, ErrMissingKeys},
		{"EmptyHomeworks", map[string]any{"current_date": float64(1000), "homeworks": []any{}}, ErrMissingKeys},
		{"HomeworksIsObject", map[string]any{"current_date": float64(1000), "homeworks": map[string]any{"a": 1}}, ErrTypeMismatch},
		{"HomeworksIsString", map[string]any{"current_date": float64(1000), "homeworks": "hw"}, ErrTypeMismatch},
		{"HomeworkIsNotObject", map[string]any{"current_date": float64(1000), "homeworks": []any{"hw"}}, ErrTypeMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CheckResponse(tc.response)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, got)
		})
	}
}

func TestCheckResponse_EmptyHomeworksFromJSON(t *testing.T) {
	_, err := CheckResponse(decode(t, `{"current_date": 1000, "homeworks": []}`))
	assert.ErrorIs(t, err, ErrMissingKeys)
}

func TestCheckResponse_JSONNumberCursor(t *testing.T) {
	response := map[string]any{
		"current_date": json.Number("1000"),
		"homeworks":    []any{map[string]any{"status": "reviewing"}},
	}
	got, err := CheckResponse(response)
	require.NoError(t, err)
	assert.Equal(t, "reviewing", got[KeyStatus])

	response["current_date"] = json.Number("0")
	_, err = CheckResponse(response)
	assert.ErrorIs(t, err, ErrMissingKeys)
}

func TestParseStatus_Verdicts(t *testing.T) {
	for status, verdict := range Verdicts {
		t.Run(string(status), func(t *testing.T) {
			msg, err := ParseStatus(Submission{"status": string(status), "homework_name": "hw1"})
			require.NoError(t, err)
			assert.Contains(t, msg, `"hw1"`)
			assert.Contains(t, msg, verdict)
			assert.Equal(t, fmt.Sprintf("Изменился статус проверки работы \"hw1\". %s", verdict), msg)
		})
	}
}

func TestParseStatus_ApprovedScenario(t *testing.T) {
	sub, err := CheckResponse(decode(t, `{"current_date": 1000, "homeworks": [{"status":"approved","homework_name":"hw1"}]}`))
	require.NoError(t, err)

	msg, err := ParseStatus(sub)
	require.NoError(t, err)
	assert.Equal(t, `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`, msg)
}

func TestParseStatus_Errors(t *testing.T) {
	tests := []struct {
		name       string
		submission Submission
		expected   error
	}{
		{"StatusAbsent", Submission{"homework_name": "hw1"}, ErrInvalidStatus},
		{"StatusNull", Submission{"status": nil, "homework_name": "hw1"}, ErrInvalidStatus},
		{"StatusUnknown", Submission{"status": "pending", "homework_name": "hw1"}, ErrInvalidStatus},
		{"StatusEmpty", Submission{"status": "", "homework_name": "hw1"}, ErrInvalidStatus},
		{"StatusNotString", Submission{"status": float64(1), "homework_name": "hw1"}, ErrInvalidStatus},
		{"StatusWrongCase", Submission{"status": "Approved", "homework_name": "hw1"}, ErrInvalidStatus},
		{"NameAbsent", Submission{"status": "approved"}, ErrMissingField},
		{"NameEmpty", Submission{"status": "rejected", "homework_name": ""}, ErrMissingField},
		{"NameNull", Submission{"status": "reviewing", "homework_name": nil}, ErrMissingField},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := ParseStatus(tc.submission)
			assert.ErrorIs(t, err, tc.expected)
			assert.Empty(t, msg)
		})
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{fmt.Errorf("%w: dial tcp", ErrEndpointUnavailable), "transport"},
		{&APIStatusError{StatusCode: 503}, "bad_status"},
		{fmt.Errorf("fetch: %w", &APIStatusError{StatusCode: 401}), "bad_status"},
		{fmt.Errorf("%w: unexpected EOF", ErrResponseDecode), "decode"},
		{ErrEmptyResponse, "missing_response"},
		{fmt.Errorf("%w: got string", ErrTypeMismatch), "type_mismatch"},
		{ErrMissingKeys, "missing_keys"},
		{ErrInvalidStatus, "invalid_status"},
		{ErrMissingField, "missing_field"},
		{errors.New("boom"), "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ErrorKind(tc.err), "ErrorKind(%v)", tc.err)
	}
}

func TestAPIStatusError(t *testing.T) {
	err := fmt.Errorf("request failed: %w", &APIStatusError{StatusCode: 500})

	assert.ErrorIs(t, err, ErrBadAPIResponse)
	var statusErr *APIStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "status code 500")
}
