package models

import "time"

// RefundResourceRest is a per-donor refund returned in responses
type RefundResourceRest struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	DonorID    string    `json:"donor_id"`
	Amount     int64     `json:"amount"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// CancellationResultRest is returned from a campaign cancellation. When the
// campaign had already been cancelled the stored result is replayed with
// WasAlreadyCancelled set, so a duplicate call can never double-refund.
type CancellationResultRest struct {
	CampaignID          string               `json:"campaign_id"`
	WasAlreadyCancelled bool                 `json:"was_already_cancelled"`
	EscrowAvailable     int64                `json:"escrow_available"`
	TotalDisbursed      int64                `json:"total_disbursed"`
	CancelledEscrows    []string             `json:"cancelled_escrows,omitempty"`
	Refunds             []RefundResourceRest `json:"refunds"`
	RecoveryCaseID      string               `json:"recovery_case_id,omitempty"`
}
