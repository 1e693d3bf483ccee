package request

import "time"

// ResponseWebhookRequest is posted by the channel provider (or a mailbox
// bridge) when a contact replies. Either the correlation id of the original
// send or the target id must be present.
type ResponseWebhookRequest struct {
	CorrelationID string     `json:"correlation_id"`
	TargetID      string     `json:"target_id"`
	ReceivedAt    *time.Time `json:"received_at"`
}

// DeliveryWebhookRequest is a provider delivery receipt (email delivered,
// call completed).
type DeliveryWebhookRequest struct {
	CorrelationID string     `json:"correlation_id" binding:"required"`
	DeliveredAt   *time.Time `json:"delivered_at"`
}
