package payment

import (
	"context"
	"errors"
)

var (
	// ErrDeclined means the gateway answered but refused to initialize the transaction.
	ErrDeclined = errors.New("payment gateway declined the transaction")
	// ErrUnavailable covers transport failures, timeouts and gateway 5xx responses.
	// Callers may retry.
	ErrUnavailable = errors.New("payment gateway unavailable")
)

// InitializeRequest describes a hosted checkout to open. AmountMinor is in the
// currency's minor unit (kobo for NGN).
type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Reference   string
	CallbackURL string
	Metadata    map[string]string
}

type InitializeResponse struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

type Provider interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
}
