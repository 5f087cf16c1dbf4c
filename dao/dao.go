package dao

import (
	"context"
	"errors"
	"time"

	"github.com/givehub/escrow.api/models"
)

// ErrNoMatch is returned by conditional updates when the document is no
// longer in the expected state. Callers translate it to an invalid-status
// outcome rather than retrying blindly.
var ErrNoMatch = errors.New("conditional update matched no document")

// ErrDuplicateKey is returned by inserts that collide with a unique index,
// such as two concurrent withdrawal requests for the same campaign.
var ErrDuplicateKey = errors.New("insert collided with a unique index")

// DAO is an interface for accessing escrow data from a backend store
type DAO interface {
	CreateEscrowResource(ctx context.Context, escrow *models.EscrowResourceDB) error
	GetEscrowResource(ctx context.Context, id string) (*models.EscrowResourceDB, error)
	GetEscrowResourcesByStatus(ctx context.Context, status string) ([]models.EscrowResourceDB, error)
	GetActiveEscrowsByCampaign(ctx context.Context, campaignID string) ([]models.EscrowResourceDB, error)
	GetExpiredVotingEscrows(ctx context.Context, now time.Time) ([]models.EscrowResourceDB, error)
	UpdateEscrowStatus(ctx context.Context, id, fromStatus, toStatus string, patch *models.EscrowResourceDB) error
	ExtendVotingWindow(ctx context.Context, id string, fromEndAt, toEndAt time.Time, extensionCount int) error

	UpsertVote(ctx context.Context, vote *models.VoteResourceDB) error
	GetVotesByEscrow(ctx context.Context, escrowID string) ([]models.VoteResourceDB, error)

	GetCampaign(ctx context.Context, id string) (*models.CampaignResourceDB, error)
	UpdateCampaignStatus(ctx context.Context, id, fromStatus, toStatus string) error
	IncrementCampaignDisbursed(ctx context.Context, id string, amount int64) error

	GetCompletedDonationsByCampaign(ctx context.Context, campaignID string) ([]models.DonationResourceDB, error)
	GetCompletedDonationsByCampaignAndDonor(ctx context.Context, campaignID, donorID string) ([]models.DonationResourceDB, error)

	CreateRecoveryCase(ctx context.Context, recoveryCase *models.RecoveryCaseResourceDB) error
	GetRecoveryCase(ctx context.Context, id string) (*models.RecoveryCaseResourceDB, error)
	GetRecoveryCaseByCampaign(ctx context.Context, campaignID string) (*models.RecoveryCaseResourceDB, error)
	GetRecoveryCasesByCreator(ctx context.Context, creatorID string) ([]models.RecoveryCaseResourceDB, error)
	ApplyRepayment(ctx context.Context, id string, prevRecovered, newRecovered int64, status string, entry models.RecoveryTimelineEntryDB) error
	UpdateRecoveryCaseStatus(ctx context.Context, id, fromStatus, toStatus string) error
	SetRecoveryCheckout(ctx context.Context, id string, checkout *models.RecoveryCheckoutDB) error
	HasTimelineOrderRef(ctx context.Context, id, orderRef string) (bool, error)

	CreateRefunds(ctx context.Context, refunds []models.RefundResourceDB) error
	GetRefundsByCampaign(ctx context.Context, campaignID string) ([]models.RefundResourceDB, error)
	UpdateRefundStatus(ctx context.Context, id, status string) error
}
