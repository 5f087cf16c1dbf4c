package service

import (
	"context"
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/models"
)

// ReleaseEscrow settles an approved withdrawal: it pays the creator through
// the external gateway and marks the request released. Disbursement proof is
// mandatory - no release without evidence.
//
// Failure semantics: a gateway failure leaves the request in admin_approved
// so the release can be retried; a duplicate release attempt is rejected
// rather than double-paid.
func (service *EscrowService) ReleaseEscrow(ctx context.Context, id, ownerID string, proofImages []string, note string) (*models.EscrowResourceRest, ResponseType, error) {
	escrow, err := service.DAO.GetEscrowResource(ctx, id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", id)
	}

	if escrow.Data.OwnerID != ownerID {
		return nil, Forbidden, Coded(CodeUnauthorized, "caller is not the owner of escrow [%s]", id)
	}

	if escrow.Data.Status == models.EscrowStatusReleased {
		return nil, InvalidStatus, Coded(CodeAlreadyReleased, "escrow [%s] has already been released", id)
	}
	if escrow.Proof.Images != nil {
		return nil, InvalidStatus, Coded(CodeProofAlreadyExists, "disbursement proof already exists on escrow [%s]", id)
	}
	if escrow.Data.Status != models.EscrowStatusAdminApproved {
		return nil, InvalidStatus, Coded(CodeInvalidStatus, "escrow [%s] is not admin approved", id)
	}

	if len(proofImages) == 0 {
		return nil, InvalidData, Coded(CodeMissingProofImages, "disbursement proof images are required")
	}

	orderRef := "ESC-" + id

	settlementRef, responseType, err := service.Gateway.Transfer(ctx, orderRef, escrow.Data.Amount, ownerID)
	if err != nil {
		// The escrow stays admin_approved: the transfer can be retried.
		log.Error(fmt.Errorf("error transferring funds for escrow [%s]: [%v]", id, err), log.Data{"service_response_type": responseType.String()})
		return nil, PaymentFailed, Coded(CodePaymentFailed, "payment gateway transfer failed: %v", err)
	}

	patch := &models.EscrowResourceDB{
		Data: models.EscrowResourceDataDB{
			SettlementRef: settlementRef,
		},
		Proof: models.DisbursementProofDB{
			Images: proofImages,
			Note:   note,
		},
		Decision: escrow.Decision,
		Tally:    escrow.Tally,
	}

	err = service.DAO.UpdateEscrowStatus(ctx, id, models.EscrowStatusAdminApproved, models.EscrowStatusReleased, patch)
	if err == dao.ErrNoMatch {
		// A concurrent release won; the disbursed counter was incremented by
		// that caller exactly once.
		return nil, InvalidStatus, Coded(CodeAlreadyReleased, "escrow [%s] has already been released", id)
	}
	if err != nil {
		return nil, Error, fmt.Errorf("error marking escrow released: [%v]", err)
	}

	err = service.DAO.IncrementCampaignDisbursed(ctx, escrow.Data.CampaignID, escrow.Data.Amount)
	if err != nil {
		return nil, Error, fmt.Errorf("error incrementing campaign disbursed total: [%v]", err)
	}

	log.Info("released escrow funds", log.Data{
		"escrow_id":      id,
		"campaign_id":    escrow.Data.CampaignID,
		"amount":         escrow.Data.Amount,
		"settlement_ref": settlementRef,
		"released_at":    time.Now().Truncate(time.Millisecond),
	})

	return service.reload(ctx, id)
}
