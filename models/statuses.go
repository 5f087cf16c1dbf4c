package models

// Escrow withdrawal request statuses. Released, admin_rejected and cancelled
// are terminal: a request never leaves them.
const (
	EscrowStatusPendingVote     = "pending_vote"
	EscrowStatusVoting          = "voting"
	EscrowStatusVotingCompleted = "voting_completed"
	EscrowStatusAdminApproved   = "admin_approved"
	EscrowStatusAdminRejected   = "admin_rejected"
	EscrowStatusReleased        = "released"
	EscrowStatusCancelled       = "cancelled"
)

// EscrowActiveStatuses are the non-terminal escrow statuses. At most one
// escrow per campaign may hold any of these at a time.
var EscrowActiveStatuses = []string{
	EscrowStatusPendingVote,
	EscrowStatusVoting,
	EscrowStatusVotingCompleted,
	EscrowStatusAdminApproved,
}

// Vote values
const (
	VoteValueApprove = "approve"
	VoteValueReject  = "reject"
)

// Escrow creation sources
const (
	EscrowSourceCreator   = "creator"
	EscrowSourceMilestone = "milestone"
)

// Campaign statuses
const (
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Donation payment statuses
const (
	DonationStatusCompleted = "completed"
)

// Recovery case statuses
const (
	RecoveryStatusPending     = "pending"
	RecoveryStatusInProgress  = "in_progress"
	RecoveryStatusCompleted   = "completed"
	RecoveryStatusFailed      = "failed"
	RecoveryStatusLegalAction = "legal_action"
)

// Refund sources and statuses
const (
	RefundSourceEscrow   = "escrow"
	RefundSourceRecovery = "recovery"

	RefundStatusPending = "pending"
	RefundStatusSettled = "settled"
	RefundStatusFailed  = "failed"
)

// Gateway settlement statuses, normalised across providers
const (
	GatewayStatusCompleted = "COMPLETED"
	GatewayStatusFailed    = "FAILED"
	GatewayStatusCancelled = "CANCELLED"
)
