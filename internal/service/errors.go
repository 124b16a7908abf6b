package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to status codes; specific errors wrap one of them.
var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrInvalidState         = errors.New("invalid state")
	ErrConflict             = errors.New("conflict")
	ErrGateway              = errors.New("payment gateway error")
	ErrSignatureInvalid     = errors.New("invalid webhook signature")
	ErrMissingConfiguration = errors.New("missing configuration")
)

var (
	ErrQuestionNotFound    = fmt.Errorf("%w: question not found", ErrNotFound)
	ErrAnswerNotFound      = fmt.Errorf("%w: answer not found", ErrNotFound)
	ErrNegotiationNotFound = fmt.Errorf("%w: negotiation not found", ErrNotFound)
	ErrNotificationMissing = fmt.Errorf("%w: notification not found", ErrNotFound)

	ErrQuestionNotPublic   = fmt.Errorf("%w: question is not public", ErrForbidden)
	ErrNotQuestionOwner    = fmt.Errorf("%w: only the question owner can do this", ErrForbidden)
	ErrNegotiationSettled  = fmt.Errorf("%w: negotiation is not pending", ErrInvalidState)
	ErrQuestionAlreadyPaid = fmt.Errorf("%w: question is already paid", ErrInvalidState)
	ErrQuestionClosed      = fmt.Errorf("%w: question is closed or best answer already selected", ErrConflict)
)

// ValidationError reports an invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
