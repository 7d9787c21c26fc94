package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Type       string // NOT_AUTHORIZED, NOT_FOUND, TABLE_NOT_FOUND, INVALID_REQUEST_UNKNOWN ...
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("airtable: %d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("airtable: %d %s", e.StatusCode, e.Type)
}

// The API answers either {"error":"NOT_FOUND"} or
// {"error":{"type":"...","message":"..."}}.
func parseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 {
		e.Message = strings.TrimSpace(string(body))
		return e
	}
	var s string
	if err := json.Unmarshal(env.Error, &s); err == nil {
		e.Type = s
		return e
	}
	var obj struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(env.Error, &obj); err == nil {
		e.Type = obj.Type
		e.Message = obj.Message
	}
	return e
}

// IsNotAuthorized reports an authorization failure (bad token or no access to the base).
func IsNotAuthorized(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.StatusCode == http.StatusForbidden ||
		e.StatusCode == http.StatusUnauthorized ||
		e.Type == "NOT_AUTHORIZED" ||
		e.Type == "AUTHENTICATION_REQUIRED"
}

// IsNotFound reports a missing table or record.
func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.StatusCode == http.StatusNotFound ||
		e.Type == "NOT_FOUND" ||
		e.Type == "TABLE_NOT_FOUND" ||
		strings.Contains(strings.ToLower(e.Message), "does not exist")
}

// IsTimeout reports a transport-level timeout, the only class of error worth retrying.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
