package dto

// WebhookRequest is the payment provider settlement callback payload.
type WebhookRequest struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// WebhookResponse acknowledges a settlement callback.
type WebhookResponse struct {
	Settled int `json:"settled"`
}
