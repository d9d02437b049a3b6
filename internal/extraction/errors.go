package extraction

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a service failure for retry purposes.
type ErrorKind string

const (
	// KindAuth means the credential was rejected. Fatal; aborts the run.
	KindAuth ErrorKind = "auth"
	// KindQuota means a rate or quota limit was hit. Retryable.
	KindQuota ErrorKind = "quota"
	// KindTransient covers all other service failures. Retryable.
	KindTransient ErrorKind = "transient"
)

// ServiceError represents a failure talking to the AI service.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("service error (%s): %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the error must abort the whole run.
func (e *ServiceError) Fatal() bool {
	return e.Kind == KindAuth
}

// Classify wraps an error from the model client as a ServiceError,
// inspecting the underlying HTTP status where one is available.
func Classify(err error) *ServiceError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ServiceError{Kind: KindAuth, Message: "API key rejected", Cause: err}
		case http.StatusTooManyRequests:
			return &ServiceError{Kind: KindQuota, Message: "rate limit exceeded", Cause: err}
		}
	}
	return &ServiceError{Kind: KindTransient, Message: "model request failed", Cause: err}
}
