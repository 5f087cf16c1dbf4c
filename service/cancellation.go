package service

import (
	"context"
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/models"
	"github.com/givehub/escrow.api/transformers"
	"golang.org/x/sync/errgroup"
)

// RefundService owns campaign cancellation, per-donor refunds and the
// recovery cases opened when escrow alone cannot make donors whole
type RefundService struct {
	DAO    dao.DAO
	Config config.Config

	// Gateway pays refunds out to donors; Providers are the gateways a
	// creator can repay through; SePay verifies callback signatures.
	Gateway   PaymentProviderService
	Providers Providers
	SePay     *SePayService
}

// CancelCampaign cancels a campaign, halts its open withdrawal requests,
// refunds donors from whatever remains in escrow and opens a recovery case
// for any shortfall.
//
// The campaign status flip is the transaction gate: it is a conditional
// update from active to cancelled, so exactly one caller performs the refund
// computation. A second invocation replays the stored result with
// WasAlreadyCancelled set instead of recomputing, which is what prevents a
// double refund.
func (service *RefundService) CancelCampaign(ctx context.Context, campaignID, adminID string) (*models.CancellationResultRest, ResponseType, error) {
	campaign, err := service.DAO.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting campaign from db: [%v]", err)
	}
	if campaign == nil {
		return nil, NotFound, Coded(CodeCampaignNotFound, "campaign not found: %s", campaignID)
	}

	if campaign.Status == models.CampaignStatusCancelled {
		return service.replayCancellation(ctx, campaign)
	}
	if campaign.Status != models.CampaignStatusActive {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "campaign [%s] has status [%s] and cannot be cancelled", campaignID, campaign.Status)
	}

	err = service.DAO.UpdateCampaignStatus(ctx, campaignID, models.CampaignStatusActive, models.CampaignStatusCancelled)
	if err == dao.ErrNoMatch {
		// Another cancellation raced this one and won the status flip.
		campaign, err = service.DAO.GetCampaign(ctx, campaignID)
		if err != nil {
			return nil, Error, fmt.Errorf("error getting campaign from db: [%v]", err)
		}
		if campaign == nil || campaign.Status != models.CampaignStatusCancelled {
			return nil, InvalidStatus, Coded(CodeInvalidStatus, "campaign [%s] cannot be cancelled", campaignID)
		}
		return service.replayCancellation(ctx, campaign)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error cancelling campaign: [%v]", err)
	}

	// Halt every open withdrawal request. Terminal requests are untouched.
	activeEscrows, err := service.DAO.GetActiveEscrowsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting active escrows from db: [%v]", err)
	}

	cancelledEscrows := make([]string, 0, len(activeEscrows))
	for i := range activeEscrows {
		escrow := &activeEscrows[i]
		err = service.DAO.UpdateEscrowStatus(ctx, escrow.ID, escrow.Data.Status, models.EscrowStatusCancelled, nil)
		if err != nil && err != dao.ErrNoMatch {
			return nil, Error, fmt.Errorf("error cancelling escrow [%s]: [%v]", escrow.ID, err)
		}
		if err == nil {
			cancelledEscrows = append(cancelledEscrows, escrow.ID)
		}
	}

	donations, err := service.DAO.GetCompletedDonationsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donations from db: [%v]", err)
	}

	shares := ComputeRefundShares(donations, campaign.TotalRaised, campaign.TotalDisbursed)

	now := time.Now().Truncate(time.Millisecond)

	refunds := make([]models.RefundResourceDB, 0, len(shares))
	for _, share := range shares {
		if share.EscrowRefund <= 0 {
			continue
		}
		refunds = append(refunds, models.RefundResourceDB{
			ID:         generateID(),
			CampaignID: campaignID,
			DonorID:    share.DonorID,
			Amount:     share.EscrowRefund,
			Source:     models.RefundSourceEscrow,
			Status:     models.RefundStatusPending,
			OrderRef:   "REF-" + generateID(),
			CreatedAt:  now,
		})
	}

	err = service.DAO.CreateRefunds(ctx, refunds)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating refunds in db: [%v]", err)
	}

	result := &models.CancellationResultRest{
		CampaignID:       campaignID,
		EscrowAvailable:  campaign.TotalRaised - campaign.TotalDisbursed,
		TotalDisbursed:   campaign.TotalDisbursed,
		CancelledEscrows: cancelledEscrows,
	}

	for i := range refunds {
		result.Refunds = append(result.Refunds, transformers.RefundTransformer{}.TransformToRest(refunds[i]))
	}

	// Disbursed funds cannot come out of escrow: they become a single claim
	// against the creator, repaid through the recovery tracker.
	if campaign.TotalDisbursed > 0 {
		recoveryCase := &models.RecoveryCaseResourceDB{
			ID:          generateID(),
			CampaignID:  campaignID,
			CreatorID:   campaign.CreatorID,
			TotalAmount: campaign.TotalDisbursed,
			Status:      models.RecoveryStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = service.DAO.CreateRecoveryCase(ctx, recoveryCase)
		if err != nil {
			return nil, Error, fmt.Errorf("error creating recovery case in db: [%v]", err)
		}
		result.RecoveryCaseID = recoveryCase.ID
	}

	log.Info("cancelled campaign", log.Data{
		"campaign_id":       campaignID,
		"admin_id":          adminID,
		"cancelled_escrows": len(cancelledEscrows),
		"refunds":           len(refunds),
		"recovery_case_id":  result.RecoveryCaseID,
	})

	service.settleRefunds(ctx, refunds)

	return result, Success, nil
}

// replayCancellation returns the stored outcome of an earlier cancellation
func (service *RefundService) replayCancellation(ctx context.Context, campaign *models.CampaignResourceDB) (*models.CancellationResultRest, ResponseType, error) {
	refunds, err := service.DAO.GetRefundsByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting refunds from db: [%v]", err)
	}

	result := &models.CancellationResultRest{
		CampaignID:          campaign.ID,
		WasAlreadyCancelled: true,
		EscrowAvailable:     campaign.TotalRaised - campaign.TotalDisbursed,
		TotalDisbursed:      campaign.TotalDisbursed,
	}
	for i := range refunds {
		if refunds[i].Source == models.RefundSourceEscrow {
			result.Refunds = append(result.Refunds, transformers.RefundTransformer{}.TransformToRest(refunds[i]))
		}
	}

	recoveryCase, err := service.DAO.GetRecoveryCaseByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting recovery case from db: [%v]", err)
	}
	if recoveryCase != nil {
		result.RecoveryCaseID = recoveryCase.ID
	}

	return result, Success, nil
}

// settleRefunds initiates the gateway payout for each refund. Payout
// failures do not fail the cancellation: the refund stays pending and can be
// re-driven operationally.
func (service *RefundService) settleRefunds(ctx context.Context, refunds []models.RefundResourceDB) {
	var group errgroup.Group
	group.SetLimit(4)

	for i := range refunds {
		refund := refunds[i]
		group.Go(func() error {
			_, _, err := service.Gateway.Transfer(ctx, refund.OrderRef, refund.Amount, refund.DonorID)
			status := models.RefundStatusSettled
			if err != nil {
				log.Error(fmt.Errorf("error settling refund [%s]: [%v]", refund.ID, err), log.Data{"donor_id": refund.DonorID})
				status = models.RefundStatusFailed
			}
			if updateErr := service.DAO.UpdateRefundStatus(ctx, refund.ID, status); updateErr != nil {
				log.Error(fmt.Errorf("error updating refund status [%s]: [%v]", refund.ID, updateErr))
			}
			return nil
		})
	}

	// Errors are logged per refund; the group only bounds concurrency.
	_ = group.Wait()
}
