package fixtures

import (
	"time"

	"github.com/givehub/escrow.api/models"
)

// GetRecoveryCase returns a recovery case part way through repayment
func GetRecoveryCase(id string, total, recovered int64) *models.RecoveryCaseResourceDB {
	status := models.RecoveryStatusPending
	if recovered > 0 {
		status = models.RecoveryStatusInProgress
	}
	return &models.RecoveryCaseResourceDB{
		ID:              id,
		CampaignID:      CampaignID,
		CreatorID:       CreatorID,
		TotalAmount:     total,
		RecoveredAmount: recovered,
		Status:          status,
		CreatedAt:       time.Now().AddDate(0, 0, -7),
	}
}

// GetRefund returns a stored per-donor refund
func GetRefund(id, donorID string, amount int64, source, status string) models.RefundResourceDB {
	return models.RefundResourceDB{
		ID:         id,
		CampaignID: CampaignID,
		DonorID:    donorID,
		Amount:     amount,
		Source:     source,
		Status:     status,
		OrderRef:   "REF-" + id,
	}
}

// GetSePayCallback returns a settlement notification as SePay delivers it
func GetSePayCallback(orderRef string, amount int64, status string) models.SePayCallback {
	return models.SePayCallback{
		OrderInvoiceNumber: orderRef,
		Status:             status,
		Amount:             amount,
		TransactionID:      "txn-001",
	}
}
