package payment

import (
	"encoding/json"
	"strings"
)

// WebhookEvent is the subset of a Paystack event callback the reconciler reads.
// Amount is in minor units.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	GatewayResponse string `json:"gateway_response"`
}

func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var evt WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, err
	}
	evt.Event = strings.TrimSpace(evt.Event)
	evt.Data.Reference = strings.TrimSpace(evt.Data.Reference)
	return &evt, nil
}
