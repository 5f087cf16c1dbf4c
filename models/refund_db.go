package models

import "time"

// RefundResourceDB is a per-donor refund stored in the DB. Immutable once
// settled.
type RefundResourceDB struct {
	ID         string    `bson:"_id"`
	CampaignID string    `bson:"campaign_id"`
	DonorID    string    `bson:"donor_id"`
	Amount     int64     `bson:"amount"`
	Source     string    `bson:"source"`
	Status     string    `bson:"status"`
	OrderRef   string    `bson:"order_ref,omitempty"`
	CreatedAt  time.Time `bson:"created_at,omitempty"`
}
