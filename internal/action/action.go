// Package action holds the result and error vocabulary shared by every
// form action: a boolean plus a one-line user message, typed errors for the
// three failure classes, and Outcome for best-effort side steps.
package action

import (
	"errors"
	"fmt"
	"net/http"
)

// Result is what every form action returns to the presentation layer.
// Warning carries a best-effort step that did not go through.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
	status  int
}

// OK builds a successful result.
func OK(message string) Result {
	return Result{Success: true, Message: message, status: http.StatusOK}
}

// Rejected builds the result of a failed validation: the error's own
// message is shown.
func Rejected(err error) Result {
	msg := err.Error()
	if v, ok := IsValidation(err); ok {
		msg = v.Message
	}
	return Result{Message: msg, status: http.StatusBadRequest}
}

// Failed builds a failed result with a user message; the HTTP status
// follows the class of err.
func Failed(err error, message string) Result {
	return Result{Message: message, status: StatusOf(err)}
}

// HTTPStatus is the status code for JSON callers.
func (r Result) HTTPStatus() int {
	if r.status != 0 {
		return r.status
	}
	if r.Success {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// StatusOf maps an error class to an HTTP status.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isValidation(err error) bool {
	_, ok := IsValidation(err)
	return ok
}

// ValidationError is a user input problem. Message is shown as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid returns a ValidationError carrying message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError means a reference id or record id matched nothing.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// UpstreamError wraps a failure of the record store, media store or mail relay.
type UpstreamError struct {
	Service string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError; nil stays nil.
func Upstream(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Service: service, Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUpstream reports whether err is an UpstreamError.
func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}

// Outcome is the result of a best-effort step that must not abort the action.
type Outcome struct {
	Applied bool
	Reason  string
}

// Applied is the outcome of a step that went through.
func Applied() Outcome { return Outcome{Applied: true} }

// Skipped is the outcome of a step that was skipped or failed; reason is for logs.
func Skipped(reason string) Outcome { return Outcome{Reason: reason} }

// SkippedWithWarning reports whether the step did not go through.
func (o Outcome) SkippedWithWarning() bool { return !o.Applied }
