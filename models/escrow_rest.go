package models

import "time"

// CreateEscrowRequest is the data received in the body of an incoming
// withdrawal request creation
type CreateEscrowRequest struct {
	CampaignID string `json:"campaign_id" validate:"required"`
	Amount     int64  `json:"amount"      validate:"required,gt=0"`
	Reason     string `json:"reason"      validate:"required"`
}

// SubmitVoteRequest is the data received in the body of an incoming vote
type SubmitVoteRequest struct {
	Value string `json:"value" validate:"required,oneof=approve reject"`
}

// ExtendVoteRequest is the data received in the body of a voting window extension
type ExtendVoteRequest struct {
	ExtensionDays int `json:"extension_days" validate:"required,oneof=3 5"`
}

// RejectEscrowRequest is the data received in the body of an admin rejection
type RejectEscrowRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required"`
}

// ReleaseEscrowRequest is the data received in the body of a release request
type ReleaseEscrowRequest struct {
	DisbursementProofImages []string `json:"disbursement_proof_images" validate:"required,min=1"`
	DisbursementNote        string   `json:"disbursement_note"`
}

// EscrowResourceRest is public facing withdrawal request details to be
// returned in the response
type EscrowResourceRest struct {
	ID             string                 `json:"id"`
	CampaignID     string                 `json:"campaign_id"`
	OwnerID        string                 `json:"owner_id"`
	Amount         int64                  `json:"amount"`
	Reason         string                 `json:"reason"`
	Source         string                 `json:"source"`
	Status         string                 `json:"status"`
	VotingStartAt  time.Time              `json:"voting_start_at,omitempty"`
	VotingEndAt    time.Time              `json:"voting_end_at,omitempty"`
	ExtensionCount int                    `json:"extension_count"`
	Decision       *AdminDecisionRest     `json:"decision,omitempty"`
	Proof          *DisbursementProofRest `json:"proof,omitempty"`
	Tally          *VoteTallyRest         `json:"tally,omitempty"`
	SettlementRef  string                 `json:"settlement_ref,omitempty"`
	CreatedAt      time.Time              `json:"created_at,omitempty"`
}

// AdminDecisionRest is the admin decision block returned in responses
type AdminDecisionRest struct {
	AdminID         string    `json:"admin_id,omitempty"`
	DecidedAt       time.Time `json:"decided_at,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
}

// DisbursementProofRest is the disbursement evidence returned in responses
type DisbursementProofRest struct {
	Images []string `json:"images,omitempty"`
	Note   string   `json:"note,omitempty"`
}

// VoteTallyRest is the weighted tally of votes on a withdrawal request
type VoteTallyRest struct {
	ApproveWeight int64 `json:"approve_weight"`
	RejectWeight  int64 `json:"reject_weight"`
	TotalWeight   int64 `json:"total_weight"`
	Approved      bool  `json:"approved"`
	VotesCast     int   `json:"votes_cast"`
}
