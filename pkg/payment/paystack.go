package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
)

const DefaultPaystackURL = "https://api.paystack.co"

// Paystack initializes hosted checkouts through the Paystack transaction API.
type Paystack struct {
	BaseURL   string
	secretKey string
	client    heimdall.Doer
}

type PaystackOption func(*Paystack)

// WithDoer replaces the retrying HTTP client, mainly for tests.
func WithDoer(d heimdall.Doer) PaystackOption {
	return func(p *Paystack) { p.client = d }
}

func NewPaystack(baseURL, secretKey string, timeout time.Duration, retries int, opts ...PaystackOption) *Paystack {
	if baseURL == "" {
		baseURL = DefaultPaystackURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 5*time.Millisecond)
	p := &Paystack{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client: httpclient.NewClient(
			httpclient.WithHTTPTimeout(timeout),
			httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
			httpclient.WithRetryCount(retries),
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type paystackInitReq struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackInitResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (p *Paystack) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	body, err := json.Marshal(paystackInitReq{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out paystackInitResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("paystack: decode response (status %d): %w", resp.StatusCode, err)
	}
	if !out.Status || resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s", ErrDeclined, out.Message)
	}
	if out.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: empty authorization url", ErrDeclined)
	}
	ref := out.Data.Reference
	if ref == "" {
		ref = req.Reference
	}
	return &InitializeResponse{
		Reference:        ref,
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
	}, nil
}
