package models

// CampaignResourceDB is the campaign aggregate referenced by the escrow
// subsystem. The campaign CRUD service owns the rest of this document; only
// the fields read or conditionally updated here are mapped.
type CampaignResourceDB struct {
	ID             string `bson:"_id"`
	CreatorID      string `bson:"creator_id"`
	Goal           int64  `bson:"goal"`
	TotalRaised    int64  `bson:"total_raised"`
	TotalDisbursed int64  `bson:"total_disbursed"`
	Status         string `bson:"status"`
}

// DonationResourceDB is a read-only donation fact used for vote eligibility,
// weights and refund shares
type DonationResourceDB struct {
	ID            string `bson:"_id"`
	CampaignID    string `bson:"campaign_id"`
	DonorID       string `bson:"donor_id"`
	Amount        int64  `bson:"amount"`
	PaymentStatus string `bson:"payment_status"`
}
