package service

import (
	"context"
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/givehub/escrow.api/models"
	"github.com/shopspring/decimal"
)

// SubmitVote records a donor's vote on a withdrawal request. Re-submitting
// overwrites the prior value: last write wins per (escrow, voter). The weight
// is not frozen here; it is recomputed from completed donations at tally time.
func (service *EscrowService) SubmitVote(ctx context.Context, escrowID, voterID, value string) (*models.VoteResourceRest, ResponseType, error) {
	if value != models.VoteValueApprove && value != models.VoteValueReject {
		return nil, InvalidData, Coded(CodeInvalidVoteValue, "vote value must be approve or reject, got [%s]", value)
	}

	escrow, err := service.DAO.GetEscrowResource(ctx, escrowID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", escrowID)
	}

	if escrow.Data.Status != models.EscrowStatusVoting {
		return nil, InvalidStatus, Coded(CodeVotingNotInProgress, "voting is not in progress on escrow [%s]", escrowID)
	}

	now := time.Now()
	if now.Before(escrow.Data.VotingStartAt) || now.After(escrow.Data.VotingEndAt) {
		return nil, Expired, Coded(CodeVotingPeriodExpired, "voting period has expired on escrow [%s]", escrowID)
	}

	donations, err := service.DAO.GetCompletedDonationsByCampaignAndDonor(ctx, escrow.Data.CampaignID, voterID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting donations from db: [%v]", err)
	}
	if len(donations) == 0 {
		return nil, NotEligible, Coded(CodeNotEligibleToVote, "voter has no completed donation on campaign [%s]", escrow.Data.CampaignID)
	}

	var weight int64
	for _, donation := range donations {
		weight += donation.Amount
	}

	vote := &models.VoteResourceDB{
		EscrowID: escrowID,
		VoterID:  voterID,
		Value:    value,
		VotedAt:  now.Truncate(time.Millisecond),
	}

	err = service.DAO.UpsertVote(ctx, vote)
	if err != nil {
		return nil, Error, fmt.Errorf("error upserting vote: [%v]", err)
	}

	log.Info("recorded vote", log.Data{"escrow_id": escrowID, "voter_id": voterID, "value": value, "weight": weight})

	return &models.VoteResourceRest{
		EscrowID: vote.EscrowID,
		VoterID:  vote.VoterID,
		Value:    vote.Value,
		Weight:   weight,
		VotedAt:  vote.VotedAt,
	}, Success, nil
}

// Tally computes the weighted approve/reject totals for a withdrawal request
// on demand. Approved iff approveWeight/totalWeight >= 0.5, so an exact tie
// favours approval. With no votes cast the tally is 0/0: handled without a
// division and never auto-approved, the request goes to admin discretion.
func (service *EscrowService) Tally(ctx context.Context, escrowID string) (*models.VoteTallyRest, ResponseType, error) {
	escrow, err := service.DAO.GetEscrowResource(ctx, escrowID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting escrow resource from db: [%v]", err)
	}
	if escrow == nil {
		return nil, NotFound, Coded(CodeEscrowNotFound, "escrow not found: %s", escrowID)
	}

	votes, err := service.DAO.GetVotesByEscrow(ctx, escrowID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting votes from db: [%v]", err)
	}

	tally := &models.VoteTallyRest{VotesCast: len(votes)}

	for _, vote := range votes {
		donations, err := service.DAO.GetCompletedDonationsByCampaignAndDonor(ctx, escrow.Data.CampaignID, vote.VoterID)
		if err != nil {
			return nil, Error, fmt.Errorf("error getting donations from db: [%v]", err)
		}
		var weight int64
		for _, donation := range donations {
			weight += donation.Amount
		}

		tally.TotalWeight += weight
		if vote.Value == models.VoteValueApprove {
			tally.ApproveWeight += weight
		} else {
			tally.RejectWeight += weight
		}
	}

	tally.Approved = QuorumApproved(tally.ApproveWeight, tally.TotalWeight)

	return tally, Success, nil
}

// QuorumApproved applies the quorum rule: approve weight must be at least
// half the total weight cast. Zero total weight is never approved.
func QuorumApproved(approveWeight, totalWeight int64) bool {
	if totalWeight == 0 {
		return false
	}
	half := decimal.NewFromInt(totalWeight).Div(decimal.NewFromInt(2))
	return decimal.NewFromInt(approveWeight).GreaterThanOrEqual(half)
}
