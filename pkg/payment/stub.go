package payment

import (
	"context"
	"net/url"
)

// StubProvider is a no-op provider for development; it approves every
// initialization and points at a local checkout page.
type StubProvider struct {
	CheckoutURL string
}

func (s *StubProvider) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	base := s.CheckoutURL
	if base == "" {
		base = "http://localhost:3000/stub-checkout"
	}
	return &InitializeResponse{
		Reference:        req.Reference,
		AuthorizationURL: base + "?reference=" + url.QueryEscape(req.Reference),
		AccessCode:       "stub_" + req.Reference,
	}, nil
}
