package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/transformers"
)

// EscrowService owns the withdrawal request lifecycle from creation through
// voting, admin decision and disbursement
type EscrowService struct {
	DAO     dao.DAO
	Config  config.Config
	Gateway PaymentProviderService
}

// CreateEscrow opens a withdrawal request against a campaign. The request
// enters its voting window immediately: the window is a fixed number of days
// from creation.
func (service *EscrowService) CreateEscrow(ctx context.Context, ownerID string, createRequest models.CreateEscrowRequest, source string) (*models.EscrowResourceRest, ResponseType, error) {
	campaign, err := service.DAO.GetCampaign(ctx, createRequest.CampaignID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting campaign from db: [%v]", err)
	}
	if campaign == nil {
		return nil, NotFound, Coded(CodeCampaignNotFound, "campaign not found: %s", createRequest.CampaignID)
	}

	if campaign.Status != models.CampaignStatusActive {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "campaign [%s] is not active", campaign.ID)
	}

	if source == models.EscrowSourceCreator && ownerID != campaign.CreatorID {
		return nil, Forbidden, Coded(CodeUnauthorized, "caller is not the campaign creator")
	}

	available := campaign.TotalRaised - campaign.TotalDisbursed
	if createRequest.Amount > available {
		return nil, InvalidData, Coded(CodeInsufficientFunds, "requested amount [%d] exceeds available escrow [%d]", createRequest.Amount, available)
	}

	active, err := service.DAO.GetActiveEscrowsByCampaign(ctx, createRequest.CampaignID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting active escrows from db: [%v]", err)
	}
	if len(active) > 0 {
		return nil, InvalidStatus, Coded(CodeActiveEscrowExists, "campaign [%s] already has an active withdrawal request", campaign.ID)
	}

	now := time.Now().Truncate(time.Millisecond)
	escrow := &models.EscrowResourceDB{
		ID: generateID(),
		Data: models.EscrowResourceDataDB{
			CampaignID:    createRequest.CampaignID,
			OwnerID:       campaign.CreatorID,
			Amount:        createRequest.Amount,
			Reason:        createRequest.Reason,
			Source:        source,
			Status:        models.EscrowStatusVoting,
			VotingStartAt: now,
			VotingEndAt:   now.AddDate(0, 0, service.votingWindowDays()),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	err = service.DAO.CreateEscrowResource(ctx, escrow)
	if err == dao.ErrDuplicateKey {
		// A concurrent create for the same campaign won the insert race
		// against the one-active-escrow index.
		return nil, InvalidStatus, Coded(CodeActiveEscrowExists, "campaign [%s] already has an active withdrawal request", campaign.ID)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error creating escrow resource in db: [%v]", err)
	}

	// A cancellation may have raced the create: the campaign status flips
	// before the cancel sweep runs, so re-read it and fold a freshly created
	// escrow into the cancellation if the campaign is no longer active.
	campaign, err = service.DAO.GetCampaign(ctx, createRequest.CampaignID)
	if err == nil && campaign != nil && campaign.Status != models.CampaignStatusActive {
		if casErr := service.DAO.UpdateEscrowStatus(ctx, escrow.ID, models.EscrowStatusVoting, models.EscrowStatusCancelled, nil); casErr != nil && casErr != dao.ErrNoMatch {
			log.Error(fmt.Errorf("error cancelling escrow created during campaign cancellation: [%v]", casErr))
		}
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "campaign [%s] is no longer active", createRequest.CampaignID)
	}

	log.Info("created withdrawal request", log.Data{"escrow_id": escrow.ID, "campaign_id": escrow.Data.CampaignID, "amount": escrow.Data.Amount, "source": source})

	rest := transformers.EscrowTransformer{}.TransformToRest(*escrow)
	return &rest, Success, nil
}

// GetEscrow returns a withdrawal request, lazily closing its voting window if
// the window end has passed. Expiry is a pure function of "now" evaluated on
// read; the sweep job only makes the transition prompt.
func (service *EscrowService) GetEscrow(ctx context.Context, id string) (*models.EscrowResourceRest, ResponseType, error) {
	escrow, err := service.DAO.GetEscrowResource(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
	}

	if isVotingExpired(escrow, time.Now()) {
		closed, _, err := service.CloseVoting(ctx, id)
		if err == nil && closed != nil {
			return closed, Success, nil
		}
		// A concurrent closer may have won the race; fall through to a
		// re-read either way.
		escrow, err = service.DAO.GetEscrowResource(ctx, id)
		if err != nil {
			return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
		}
		if escrow == nil {
			return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
		}
	}

	rest := transformers.EscrowTransformer{}.TransformToRest(*escrow)
	return &rest, Success, nil
}

// GetEscrowsByStatus returns all withdrawal requests in the supplied status,
// used for the admin review queue
func (service *EscrowService) GetEscrowsByStatus(ctx context.Context, status string) ([]models.EscrowResourceRest, ResponseType, error) {
	escrows, err := service.DAO.GetEscrowResourcesByStatus(ctx, status)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resources from db: [%v]", err)
	}

	rest := make([]models.EscrowResourceRest, 0, len(escrows))
	for i := range escrows {
		rest = append(rest, transformers.EscrowTransformer{}.TransformToRest(escrows[i]))
	}
	return rest, Success, nil
}

// CloseVoting moves a withdrawal request out of voting and stores the final
// tally snapshot. Safe to call concurrently: only one caller's conditional
// update lands.
func (service *EscrowService) CloseVoting(ctx context.Context, id string) (*models.EscrowResourceRest, ResponseType, error) {
	escrow, err := service.DAO.GetEscrowResource(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
	}
	if escrow.Data.Status != models.EscrowStatusVoting {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "escrow [%s] is not in voting", id)
	}

	tally, _, err := service.Tally(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error computing tally: [%v]", err)
	}

	patch := &models.EscrowResourceDB{
		Tally: models.VoteTallyDB{
			ApproveWeight: tally.ApproveWeight,
			TotalWeight:   tally.TotalWeight,
			Approved:      tally.Approved,
		},
	}

	err = service.DAO.UpdateEscrowStatus(ctx, id, models.EscrowStatusVoting, models.EscrowStatusVotingCompleted, patch)
	if err == dao.ErrNoMatch {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "escrow [%s] is not in voting", id)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error closing voting on escrow resource: [%v]", err)
	}

	log.Info("closed voting on withdrawal request", log.Data{"escrow_id": id, "approve_weight": tally.ApproveWeight, "total_weight": tally.TotalWeight, "approved": tally.Approved})

	return service.reload(ctx, id)
}

// ExpiredVotingEscrows lists withdrawal requests still in voting whose
// window has passed
func (service *EscrowService) ExpiredVotingEscrows(ctx context.Context, now time.Time) ([]models.EscrowResourceDB, error) {
	return service.DAO.GetExpiredVotingEscrows(ctx, now)
}

// CloseExpiredVoting closes voting on an expired withdrawal request. Losing
// the race to another closer is not an error.
func (service *EscrowService) CloseExpiredVoting(ctx context.Context, id string) error {
	_, responseType, err := service.CloseVoting(ctx, id)
	if err != nil && responseType != InvalidStatus {
		return err
	}
	return nil
}

// ExtendVoting lengthens the voting window by 3 or 5 days. Repeat extensions
// are permitted without limit.
func (service *EscrowService) ExtendVoting(ctx context.Context, id, adminID string, extensionDays int) (*models.EscrowResourceRest, ResponseType, error) {
	if extensionDays != 3 && extensionDays != 5 {
		return nil, InvalidData, Coded(CodeInvalidExtensionDays, "extension days must be 3 or 5, got %d", extensionDays)
	}

	escrow, err := service.DAO.GetEscrowResource(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
	}
	if escrow.Data.Status != models.EscrowStatusVoting {
		return nil, InvalidStatus, Coded(CodeVotingNotInProgress, "escrow [%s] is not in voting", id)
	}

	newEndAt := escrow.Data.VotingEndAt.AddDate(0, 0, extensionDays)
	extensionCount := escrow.Data.ExtensionCount + 1

	// Conditional on the window end we read, so two concurrent extensions
	// cannot collapse into one.
	err = service.DAO.ExtendVotingWindow(ctx, id, escrow.Data.VotingEndAt, newEndAt, extensionCount)
	if err == dao.ErrNoMatch {
		return nil, InvalidStatus, Coded(CodeVotingNotInProgress, "escrow [%s] changed before the extension could be applied", id)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error extending voting window: [%v]", err)
	}

	log.Info("extended voting window", log.Data{"escrow_id": id, "admin_id": adminID, "extension_days": extensionDays, "extension_count": extensionCount})

	return service.reload(ctx, id)
}

// ApproveEscrow records an admin approval. The donor tally is advisory: a
// rejected-by-donors tally does not block approval. The requested amount is
// re-checked against the campaign's available escrow at decision time.
func (service *EscrowService) ApproveEscrow(ctx context.Context, id, adminID string) (*models.EscrowResourceRest, ResponseType, error) {
	escrow, responseType, err := service.escrowForDecision(ctx, id)
	if err != nil {
		return nil, responseType, err
	}

	campaign, err := service.DAO.GetCampaign(ctx, escrow.Data.CampaignID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting campaign from db: [%v]", err)
	}
	if campaign == nil {
		return nil, NotFound, Coded(CodeCampaignNotFound, "campaign not found: %s", escrow.Data.CampaignID)
	}

	available := campaign.TotalRaised - campaign.TotalDisbursed
	if escrow.Data.Amount > available {
		return nil, InvalidData, Coded(CodeInsufficientFunds, "requested amount [%d] exceeds available escrow [%d] at decision time", escrow.Data.Amount, available)
	}

	patch := &models.EscrowResourceDB{
		Decision: models.AdminDecisionDB{
			AdminID:   adminID,
			DecidedAt: time.Now().Truncate(time.Millisecond),
		},
		Tally: escrow.Tally,
	}

	err = service.DAO.UpdateEscrowStatus(ctx, id, models.EscrowStatusVotingCompleted, models.EscrowStatusAdminApproved, patch)
	if err == dao.ErrNoMatch {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "escrow [%s] is not awaiting an admin decision", id)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error approving escrow resource: [%v]", err)
	}

	log.Info("admin approved withdrawal request", log.Data{"escrow_id": id, "admin_id": adminID})

	return service.reload(ctx, id)
}

// RejectEscrow records an admin rejection with a mandatory reason
func (service *EscrowService) RejectEscrow(ctx context.Context, id, adminID, rejectionReason string) (*models.EscrowResourceRest, ResponseType, error) {
	if rejectionReason == "" {
		return nil, InvalidData, Coded(CodeMissingRejectionReason, "rejection reason is required")
	}

	escrow, responseType, err := service.escrowForDecision(ctx, id)
	if err != nil {
		return nil, responseType, err
	}

	patch := &models.EscrowResourceDB{
		Decision: models.AdminDecisionDB{
			AdminID:         adminID,
			DecidedAt:       time.Now().Truncate(time.Millisecond),
			RejectionReason: rejectionReason,
		},
		Tally: escrow.Tally,
	}

	err = service.DAO.UpdateEscrowStatus(ctx, id, models.EscrowStatusVotingCompleted, models.EscrowStatusAdminRejected, patch)
	if err == dao.ErrNoMatch {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "escrow [%s] is not awaiting an admin decision", id)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error rejecting escrow resource: [%v]", err)
	}

	log.Info("admin rejected withdrawal request", log.Data{"escrow_id": id, "admin_id": adminID})

	return service.reload(ctx, id)
}

// escrowForDecision loads an escrow for an admin decision, lazily closing an
// expired voting window first so a decision straight after expiry does not
// depend on the sweep having run.
func (service *EscrowService) escrowForDecision(ctx context.Context, id string) (*models.EscrowResourceDB, ResponseType, error) {
	escrow, err := service.DAO.GetEscrowResource(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
	}

	if isVotingExpired(escrow, time.Now()) {
		if _, _, err := service.CloseVoting(ctx, id); err == nil {
			escrow, err = service.DAO.GetEscrowResource(ctx, id)
			if err != nil {
				return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
			}
		}
	}

	if escrow.Data.Status != models.EscrowStatusVotingCompleted {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "escrow [%s] is not awaiting an admin decision", id)
	}

	return escrow, Success, nil
}

func (service *EscrowService) reload(ctx context.Context, id string) (*models.EscrowResourceRest, ResponseType, error) {
	escrow, err := service.DAO.GetEscrowResource(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
	}
	rest := transformers.EscrowTransformer{}.TransformToRest(*escrow)
	return &rest, Success, nil
}

func (service *EscrowService) votingWindowDays() int {
	if service.Config.VotingWindowDays > 0 {
		return service.Config.VotingWindowDays
	}
	return 3
}

// isVotingExpired reports whether a voting window has closed, as a pure
// function of the supplied clock
func isVotingExpired(escrow *models.EscrowResourceDB, now time.Time) bool {
	return escrow.Data.Status == models.EscrowStatusVoting && now.After(escrow.Data.VotingEndAt)
}

// generateID creates a string of 20 numbers made up of 7 random numbers,
// followed by 13 numbers derived from the current time
func generateID() string {
	ranNumber := fmt.Sprintf("%07d", rand.Intn(9999999))
	millis := strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 10)
	return ranNumber + millis
}
