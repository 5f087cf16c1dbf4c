package models

import "time"

// VoteResourceDB is a single donor vote stored in the DB. Weight is not
// stored: it is recomputed from completed donations at tally time.
type VoteResourceDB struct {
	EscrowID string    `bson:"escrow_id"`
	VoterID  string    `bson:"voter_id"`
	Value    string    `bson:"value"`
	VotedAt  time.Time `bson:"voted_at"`
}

// VoteResourceRest is a single donor vote returned in responses
type VoteResourceRest struct {
	EscrowID string    `json:"escrow_id"`
	VoterID  string    `json:"voter_id"`
	Value    string    `json:"value"`
	Weight   int64     `json:"weight"`
	VotedAt  time.Time `json:"voted_at"`
}
