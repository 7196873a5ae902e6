package service

import "errors"

// Kind classifies service errors for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUpstream
	KindUnauthorized
)

// Error is a classified service error. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so wrapped copies of
// a sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// wrap attaches cause to a copy of sentinel.
func wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Message: sentinel.Message, Err: cause}
}

// KindOf returns the kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-safe message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "An unexpected error occurred. Please try again later."
}

var (
	ErrAlreadyRegistered      = newError(KindConflict, "Email already registered")
	ErrRegistrationInProgress = newError(KindConflict, "A registration for this email is already in progress")
	ErrPaymentCompleted       = newError(KindConflict, "Payment has already been completed")
	ErrAttendeeNotFound       = newError(KindNotFound, "Attendee not found")
	ErrDonorNotFound          = newError(KindNotFound, "Donor not found")
	ErrPaymentNotFound        = newError(KindNotFound, "Payment not found")
	ErrReferenceNotFound      = newError(KindNotFound, "Reference not found")
	ErrMissingReference       = newError(KindValidation, "Missing reference")
	ErrInvalidAmount          = newError(KindValidation, "Amount must be greater than zero")
	ErrInvalidSignature       = newError(KindUnauthorized, "Invalid signature")
	ErrInvalidPayload         = newError(KindValidation, "Invalid payload")
	ErrGatewayFailure         = newError(KindUpstream, "Payment initialization failed. Please try again later.")
)
