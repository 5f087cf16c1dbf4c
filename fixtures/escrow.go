package fixtures

import (
	"time"

	"github.com/givehub/escrow.api/models"
)

var CampaignID = "camp-1"
var CreatorID = "creator-1"
var AdminID = "admin-1"

// GetVotingEscrow returns an escrow mid-vote with the supplied window end
func GetVotingEscrow(id string, amount int64, votingEndAt time.Time) *models.EscrowResourceDB {
	return &models.EscrowResourceDB{
		ID: id,
		Data: models.EscrowResourceDataDB{
			CampaignID:    CampaignID,
			OwnerID:       CreatorID,
			Amount:        amount,
			Reason:        "medical supplies, first batch",
			Source:        models.EscrowSourceCreator,
			Status:        models.EscrowStatusVoting,
			VotingStartAt: votingEndAt.AddDate(0, 0, -3),
			VotingEndAt:   votingEndAt,
		},
	}
}

// GetEscrowInStatus returns an escrow in an arbitrary status
func GetEscrowInStatus(id, status string, amount int64) *models.EscrowResourceDB {
	escrow := GetVotingEscrow(id, amount, time.Now().AddDate(0, 0, 1))
	escrow.Data.Status = status
	return escrow
}

// GetActiveCampaign returns a campaign accepting donations
func GetActiveCampaign(raised, disbursed int64) *models.CampaignResourceDB {
	return &models.CampaignResourceDB{
		ID:             CampaignID,
		CreatorID:      CreatorID,
		Goal:           2000000,
		TotalRaised:    raised,
		TotalDisbursed: disbursed,
		Status:         models.CampaignStatusActive,
	}
}

// GetCompletedDonation returns a settled donation fact
func GetCompletedDonation(id, donorID string, amount int64) models.DonationResourceDB {
	return models.DonationResourceDB{
		ID:            id,
		CampaignID:    CampaignID,
		DonorID:       donorID,
		Amount:        amount,
		PaymentStatus: models.DonationStatusCompleted,
	}
}

// GetVote returns a stored donor vote
func GetVote(escrowID, voterID, value string) models.VoteResourceDB {
	return models.VoteResourceDB{
		EscrowID: escrowID,
		VoterID:  voterID,
		Value:    value,
		VotedAt:  time.Now(),
	}
}
