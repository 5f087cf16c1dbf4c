package models

import "time"

// RecoveryCaseResourceRest is public facing recovery case details to be
// returned in the response
type RecoveryCaseResourceRest struct {
	ID              string                      `json:"id"`
	CampaignID      string                      `json:"campaign_id"`
	CreatorID       string                      `json:"creator_id"`
	TotalAmount     int64                       `json:"total_amount"`
	RecoveredAmount int64                       `json:"recovered_amount"`
	Status          string                      `json:"status"`
	Deadline        *time.Time                  `json:"deadline,omitempty"`
	Timeline        []RecoveryTimelineEntryRest `json:"timeline,omitempty"`
	CreatedAt       time.Time                   `json:"created_at,omitempty"`
}

// RecoveryTimelineEntryRest is a single repayment event returned in responses
type RecoveryTimelineEntryRest struct {
	Amount   int64     `json:"amount"`
	Source   string    `json:"source"`
	OrderRef string    `json:"order_ref,omitempty"`
	Note     string    `json:"note,omitempty"`
	At       time.Time `json:"at"`
}

// InitRepaymentRequest is the data received in the body of a repayment
// checkout initiation
type InitRepaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=sepay paypal"`
}

// InitRepaymentResponse is the gateway checkout details returned to the
// creator so they can complete a repayment
type InitRepaymentResponse struct {
	CheckoutURL string            `json:"checkout_url"`
	FormFields  map[string]string `json:"form_fields,omitempty"`
	OrderRef    string            `json:"order_ref"`
}
