package models

import "time"

// EscrowResourceDB contains all withdrawal request details to be stored in the DB
type EscrowResourceDB struct {
	ID       string               `bson:"_id"`
	Data     EscrowResourceDataDB `bson:"data"`
	Decision AdminDecisionDB      `bson:"decision,omitempty"`
	Proof    DisbursementProofDB  `bson:"proof,omitempty"`
	Tally    VoteTallyDB          `bson:"tally,omitempty"`
}

// EscrowResourceDataDB is the data block of a withdrawal request
type EscrowResourceDataDB struct {
	CampaignID     string    `bson:"campaign_id"`
	OwnerID        string    `bson:"owner_id"`
	Amount         int64     `bson:"amount"`
	Reason         string    `bson:"reason"`
	Source         string    `bson:"source"`
	Status         string    `bson:"status"`
	VotingStartAt  time.Time `bson:"voting_start_at,omitempty"`
	VotingEndAt    time.Time `bson:"voting_end_at,omitempty"`
	ExtensionCount int       `bson:"extension_count"`
	SettlementRef  string    `bson:"settlement_ref,omitempty"`
	CreatedAt      time.Time `bson:"created_at,omitempty"`
	UpdatedAt      time.Time `bson:"updated_at,omitempty"`
}

// AdminDecisionDB records the admin approve/reject decision on a request
type AdminDecisionDB struct {
	AdminID         string    `bson:"admin_id,omitempty"`
	DecidedAt       time.Time `bson:"decided_at,omitempty"`
	RejectionReason string    `bson:"rejection_reason,omitempty"`
}

// DisbursementProofDB is the evidence attached when funds are released
type DisbursementProofDB struct {
	Images []string `bson:"images,omitempty"`
	Note   string   `bson:"note,omitempty"`
}

// VoteTallyDB is the tally snapshot stored when voting closes
type VoteTallyDB struct {
	ApproveWeight int64 `bson:"approve_weight"`
	TotalWeight   int64 `bson:"total_weight"`
	Approved      bool  `bson:"approved"`
}
