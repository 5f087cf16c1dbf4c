package service

import (
	"sort"

	"github.com/givehub/escrow.api/models"
	"github.com/shopspring/decimal"
)

// DonorShare is one donor's position when a campaign is cancelled: what they
// gave, what comes straight back from escrow, and what becomes a claim
// against the creator.
type DonorShare struct {
	DonorID       string
	Donated       int64
	EscrowRefund  int64
	RecoveryClaim int64
}

// ComputeRefundShares applies the proportional refund rule. With nothing
// disbursed every donor gets their full donation back from escrow. Otherwise
// the refund ratio is escrow-available over total raised; each donor's
// immediate refund is their donated total times the ratio, rounded down to a
// whole currency unit, and the remainder is their recovery claim.
//
// Donations are aggregated per donor before the ratio is applied. The result
// is ordered by donor ID so repeated runs produce identical output.
func ComputeRefundShares(donations []models.DonationResourceDB, totalRaised, totalDisbursed int64) []DonorShare {
	donated := make(map[string]int64)
	for _, donation := range donations {
		donated[donation.DonorID] += donation.Amount
	}

	donorIDs := make([]string, 0, len(donated))
	for donorID := range donated {
		donorIDs = append(donorIDs, donorID)
	}
	sort.Strings(donorIDs)

	shares := make([]DonorShare, 0, len(donorIDs))

	if totalDisbursed == 0 || totalRaised == 0 {
		for _, donorID := range donorIDs {
			shares = append(shares, DonorShare{
				DonorID:      donorID,
				Donated:      donated[donorID],
				EscrowRefund: donated[donorID],
			})
		}
		return shares
	}

	available := totalRaised - totalDisbursed
	ratio := decimal.NewFromInt(available).Div(decimal.NewFromInt(totalRaised))

	for _, donorID := range donorIDs {
		refund := decimal.NewFromInt(donated[donorID]).Mul(ratio).Floor().IntPart()
		shares = append(shares, DonorShare{
			DonorID:       donorID,
			Donated:       donated[donorID],
			EscrowRefund:  refund,
			RecoveryClaim: donated[donorID] - refund,
		})
	}

	return shares
}

// ComputeRecoveryDistribution splits a newly recovered amount across donors
// in proportion to their outstanding recovery claims. Amounts are rounded
// down; any sub-unit remainder stays in the case until the next repayment.
func ComputeRecoveryDistribution(outstanding map[string]int64, recovered int64) map[string]int64 {
	var totalOutstanding int64
	for _, claim := range outstanding {
		totalOutstanding += claim
	}
	if totalOutstanding == 0 || recovered <= 0 {
		return nil
	}

	if recovered > totalOutstanding {
		recovered = totalOutstanding
	}

	recoveredDec := decimal.NewFromInt(recovered)
	totalDec := decimal.NewFromInt(totalOutstanding)

	distribution := make(map[string]int64, len(outstanding))
	for donorID, claim := range outstanding {
		if claim <= 0 {
			continue
		}
		share := decimal.NewFromInt(claim).Mul(recoveredDec).Div(totalDec).Floor().IntPart()
		if share > 0 {
			distribution[donorID] = share
		}
	}

	return distribution
}
