// Package transformers maps resources between their database and REST
// representations.
package transformers

import (
	"github.com/givehub/escrow.api/models"
)

// EscrowTransformer transforms withdrawal request data between rest and
// database models
type EscrowTransformer struct{}

// TransformToRest transforms an escrow database model into its rest model
func (et EscrowTransformer) TransformToRest(dbResource models.EscrowResourceDB) models.EscrowResourceRest {
	rest := models.EscrowResourceRest{
		ID:             dbResource.ID,
		CampaignID:     dbResource.Data.CampaignID,
		OwnerID:        dbResource.Data.OwnerID,
		Amount:         dbResource.Data.Amount,
		Reason:         dbResource.Data.Reason,
		Source:         dbResource.Data.Source,
		Status:         dbResource.Data.Status,
		VotingStartAt:  dbResource.Data.VotingStartAt,
		VotingEndAt:    dbResource.Data.VotingEndAt,
		ExtensionCount: dbResource.Data.ExtensionCount,
		SettlementRef:  dbResource.Data.SettlementRef,
		CreatedAt:      dbResource.Data.CreatedAt,
	}

	if dbResource.Decision.AdminID != "" {
		decision := models.AdminDecisionRest(dbResource.Decision)
		rest.Decision = &decision
	}
	if dbResource.Proof.Images != nil {
		proof := models.DisbursementProofRest(dbResource.Proof)
		rest.Proof = &proof
	}
	if dbResource.Data.Status == models.EscrowStatusVotingCompleted ||
		dbResource.Data.Status == models.EscrowStatusAdminApproved ||
		dbResource.Data.Status == models.EscrowStatusAdminRejected ||
		dbResource.Data.Status == models.EscrowStatusReleased {
		rest.Tally = &models.VoteTallyRest{
			ApproveWeight: dbResource.Tally.ApproveWeight,
			RejectWeight:  dbResource.Tally.TotalWeight - dbResource.Tally.ApproveWeight,
			TotalWeight:   dbResource.Tally.TotalWeight,
			Approved:      dbResource.Tally.Approved,
		}
	}

	return rest
}
