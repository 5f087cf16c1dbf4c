package models

import "time"

// RecoveryCaseResourceDB tracks a claim against a creator for funds disbursed
// before the campaign was cancelled
type RecoveryCaseResourceDB struct {
	ID              string                    `bson:"_id"`
	CampaignID      string                    `bson:"campaign_id"`
	CreatorID       string                    `bson:"creator_id"`
	TotalAmount     int64                     `bson:"total_amount"`
	RecoveredAmount int64                     `bson:"recovered_amount"`
	Status          string                    `bson:"status"`
	Deadline        *time.Time                `bson:"deadline,omitempty"`
	Checkout        *RecoveryCheckoutDB       `bson:"checkout,omitempty"`
	Timeline        []RecoveryTimelineEntryDB `bson:"timeline,omitempty"`
	CreatedAt       time.Time                 `bson:"created_at,omitempty"`
	UpdatedAt       time.Time                 `bson:"updated_at,omitempty"`
}

// RecoveryCheckoutDB records the most recently opened repayment checkout so
// the success redirect can verify settlement with the gateway that opened it
type RecoveryCheckoutDB struct {
	Provider    string    `bson:"provider"`
	OrderRef    string    `bson:"order_ref"`
	ProviderRef string    `bson:"provider_ref"`
	CreatedAt   time.Time `bson:"created_at"`
}

// RecoveryTimelineEntryDB is a single repayment (or escalation) event on a case
type RecoveryTimelineEntryDB struct {
	Amount   int64     `bson:"amount"`
	Source   string    `bson:"source"`
	OrderRef string    `bson:"order_ref,omitempty"`
	Note     string    `bson:"note,omitempty"`
	At       time.Time `bson:"at"`
}
