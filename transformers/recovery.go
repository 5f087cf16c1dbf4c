package transformers

import (
	"github.com/givehub/escrow.api/models"
)

// RecoveryTransformer transforms recovery case data between rest and database
// models
type RecoveryTransformer struct{}

// TransformToRest transforms a recovery case database model into its rest
// model
func (rt RecoveryTransformer) TransformToRest(dbResource models.RecoveryCaseResourceDB) models.RecoveryCaseResourceRest {
	rest := models.RecoveryCaseResourceRest{
		ID:              dbResource.ID,
		CampaignID:      dbResource.CampaignID,
		CreatorID:       dbResource.CreatorID,
		TotalAmount:     dbResource.TotalAmount,
		RecoveredAmount: dbResource.RecoveredAmount,
		Status:          dbResource.Status,
		Deadline:        dbResource.Deadline,
		CreatedAt:       dbResource.CreatedAt,
	}

	for _, entry := range dbResource.Timeline {
		rest.Timeline = append(rest.Timeline, models.RecoveryTimelineEntryRest(entry))
	}

	return rest
}

// RefundTransformer transforms refund data between rest and database models
type RefundTransformer struct{}

// TransformToRest transforms a refund database model into its rest model
func (rt RefundTransformer) TransformToRest(dbResource models.RefundResourceDB) models.RefundResourceRest {
	return models.RefundResourceRest{
		ID:         dbResource.ID,
		CampaignID: dbResource.CampaignID,
		DonorID:    dbResource.DonorID,
		Amount:     dbResource.Amount,
		Source:     dbResource.Source,
		Status:     dbResource.Status,
		CreatedAt:  dbResource.CreatedAt,
	}
}
