package dao

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx := context.Background()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	var err error
	client, err = mongo.Connect(ctx, clientOptions)

	// Assume the caller of this func cannot handle the case where there is no
	// database connection so the service must crash here as it cannot do its
	// work without a connection
	if err != nil {
		log.Error(err)
		panic(err)
	}

	// Check we can connect to the mongodb instance. Failure here should result
	// in a crash.
	pingContext, cancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer cancel()
	err = client.Ping(pingContext, nil)
	if err != nil {
		log.Error(errors.New("ping to mongodb timed out. please check the connection to mongodb and that it is running"))
		panic(err)
	}

	log.Info("connected to mongodb successfully")

	return client
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB as the
// backend driver
type MongoService struct {
	db     MongoDatabaseInterface
	Config config.Config
}

// NewMongoService constructs a MongoService connected to the configured
// database
func NewMongoService(cfg config.Config) *MongoService {
	return &MongoService{
		db:     getMongoDatabase(cfg.MongoDBURL, cfg.Database),
		Config: cfg,
	}
}

var ensureIndexesOnce sync.Once

// EnsureIndexes creates the indexes the conditional updates rely on: a
// partial unique index so a campaign can hold at most one active escrow, and
// a unique (escrow_id, voter_id) index so vote upserts are a single document.
func (m *MongoService) EnsureIndexes(ctx context.Context) error {
	var err error
	ensureIndexesOnce.Do(func() {
		_, err = m.db.Collection(m.Config.EscrowCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "data.campaign_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"data.status": bson.M{"$in": models.EscrowActiveStatuses}}),
		})
		if err != nil {
			return
		}
		_, err = m.db.Collection(m.Config.VoteCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "escrow_id", Value: 1}, {Key: "voter_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	})
	return err
}

// CreateEscrowResource writes a new withdrawal request to the DB. A raced
// insert against the one-active-escrow-per-campaign index surfaces as
// ErrDuplicateKey so the service can answer with the existing request.
func (m *MongoService) CreateEscrowResource(ctx context.Context, escrow *models.EscrowResourceDB) error {
	collection := m.db.Collection(m.Config.EscrowCollection)
	_, err := collection.InsertOne(ctx, escrow)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// GetEscrowResource gets a withdrawal request from the DB.
// If the escrow is not found, nil is returned with no error.
func (m *MongoService) GetEscrowResource(ctx context.Context, id string) (*models.EscrowResourceDB, error) {
	var resource models.EscrowResourceDB

	collection := m.db.Collection(m.Config.EscrowCollection)
	dbResource := collection.FindOne(ctx, bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// GetEscrowResourcesByStatus gets all withdrawal requests with the supplied
// status, newest first
func (m *MongoService) GetEscrowResourcesByStatus(ctx context.Context, status string) ([]models.EscrowResourceDB, error) {
	return m.findEscrows(ctx, bson.M{"data.status": status})
}

// GetActiveEscrowsByCampaign gets the non-terminal withdrawal requests for a
// campaign
func (m *MongoService) GetActiveEscrowsByCampaign(ctx context.Context, campaignID string) ([]models.EscrowResourceDB, error) {
	return m.findEscrows(ctx, bson.M{
		"data.campaign_id": campaignID,
		"data.status":      bson.M{"$in": models.EscrowActiveStatuses},
	})
}

// GetExpiredVotingEscrows gets withdrawal requests still in voting whose
// window end has passed
func (m *MongoService) GetExpiredVotingEscrows(ctx context.Context, now time.Time) ([]models.EscrowResourceDB, error) {
	return m.findEscrows(ctx, bson.M{
		"data.status":        models.EscrowStatusVoting,
		"data.voting_end_at": bson.M{"$lte": now},
	})
}

func (m *MongoService) findEscrows(ctx context.Context, filter bson.M) ([]models.EscrowResourceDB, error) {
	collection := m.db.Collection(m.Config.EscrowCollection)
	opts := options.Find().SetSort(bson.D{{Key: "data.created_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Error(err)
		}
	}()

	var escrows []models.EscrowResourceDB
	if err := cursor.All(ctx, &escrows); err != nil {
		return nil, err
	}
	return escrows, nil
}

// UpdateEscrowStatus transitions a withdrawal request from one status to
// another. The update only applies while the current status still equals
// fromStatus; ErrNoMatch is returned otherwise so two concurrent decisions
// can never both land.
func (m *MongoService) UpdateEscrowStatus(ctx context.Context, id, fromStatus, toStatus string, patch *models.EscrowResourceDB) error {
	collection := m.db.Collection(m.Config.EscrowCollection)

	set := bson.M{
		"data.status":     toStatus,
		"data.updated_at": time.Now().Truncate(time.Millisecond),
	}

	if patch != nil {
		if patch.Data.SettlementRef != "" {
			set["data.settlement_ref"] = patch.Data.SettlementRef
		}
		if patch.Decision.AdminID != "" {
			set["decision"] = patch.Decision
		}
		if patch.Proof.Images != nil {
			set["proof"] = patch.Proof
		}
		if patch.Tally.TotalWeight != 0 || patch.Tally.ApproveWeight != 0 || toStatus == models.EscrowStatusVotingCompleted {
			set["tally"] = patch.Tally
		}
	}

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id, "data.status": fromStatus},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// ExtendVotingWindow pushes a voting window's end out to toEndAt. The update
// is conditional on the window still ending at fromEndAt, so two concurrent
// extensions cannot silently collapse into one; ErrNoMatch is returned to the
// loser.
func (m *MongoService) ExtendVotingWindow(ctx context.Context, id string, fromEndAt, toEndAt time.Time, extensionCount int) error {
	collection := m.db.Collection(m.Config.EscrowCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{
			"_id":                id,
			"data.status":        models.EscrowStatusVoting,
			"data.voting_end_at": fromEndAt,
		},
		bson.M{"$set": bson.M{
			"data.voting_end_at":   toEndAt,
			"data.extension_count": extensionCount,
			"data.updated_at":      time.Now().Truncate(time.Millisecond),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// UpsertVote records a donor vote. Re-submitting replaces the prior value:
// last write wins per (escrow, voter).
func (m *MongoService) UpsertVote(ctx context.Context, vote *models.VoteResourceDB) error {
	collection := m.db.Collection(m.Config.VoteCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"escrow_id": vote.EscrowID, "voter_id": vote.VoterID},
		bson.M{"$set": bson.M{"value": vote.Value, "voted_at": vote.VotedAt}},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetVotesByEscrow gets the current vote of every donor who has voted on a
// withdrawal request
func (m *MongoService) GetVotesByEscrow(ctx context.Context, escrowID string) ([]models.VoteResourceDB, error) {
	collection := m.db.Collection(m.Config.VoteCollection)

	cursor, err := collection.Find(ctx, bson.M{"escrow_id": escrowID})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Error(err)
		}
	}()

	var votes []models.VoteResourceDB
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// GetCampaign gets a campaign aggregate from the DB.
// If the campaign is not found, nil is returned with no error.
func (m *MongoService) GetCampaign(ctx context.Context, id string) (*models.CampaignResourceDB, error) {
	var resource models.CampaignResourceDB

	collection := m.db.Collection(m.Config.CampaignCollection)
	dbResource := collection.FindOne(ctx, bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// UpdateCampaignStatus transitions a campaign between statuses conditionally.
// ErrNoMatch means another caller got there first.
func (m *MongoService) UpdateCampaignStatus(ctx context.Context, id, fromStatus, toStatus string) error {
	collection := m.db.Collection(m.Config.CampaignCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": fromStatus},
		bson.M{"$set": bson.M{"status": toStatus}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// IncrementCampaignDisbursed adds a released amount to the campaign's
// disbursed total. Callers must only invoke this after the releasing escrow's
// status CAS has succeeded, which is what keeps the counter single-count
// under duplicate settlement callbacks.
func (m *MongoService) IncrementCampaignDisbursed(ctx context.Context, id string, amount int64) error {
	collection := m.db.Collection(m.Config.CampaignCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"total_disbursed": amount}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// GetCompletedDonationsByCampaign gets all completed donations on a campaign
func (m *MongoService) GetCompletedDonationsByCampaign(ctx context.Context, campaignID string) ([]models.DonationResourceDB, error) {
	return m.findDonations(ctx, bson.M{
		"campaign_id":    campaignID,
		"payment_status": models.DonationStatusCompleted,
	})
}

// GetCompletedDonationsByCampaignAndDonor gets a single donor's completed
// donations on a campaign, used for vote eligibility and weight
func (m *MongoService) GetCompletedDonationsByCampaignAndDonor(ctx context.Context, campaignID, donorID string) ([]models.DonationResourceDB, error) {
	return m.findDonations(ctx, bson.M{
		"campaign_id":    campaignID,
		"donor_id":       donorID,
		"payment_status": models.DonationStatusCompleted,
	})
}

func (m *MongoService) findDonations(ctx context.Context, filter bson.M) ([]models.DonationResourceDB, error) {
	collection := m.db.Collection(m.Config.DonationCollection)

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Error(err)
		}
	}()

	var donations []models.DonationResourceDB
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// CreateRecoveryCase writes a new recovery case to the DB
func (m *MongoService) CreateRecoveryCase(ctx context.Context, recoveryCase *models.RecoveryCaseResourceDB) error {
	collection := m.db.Collection(m.Config.RecoveryCollection)
	_, err := collection.InsertOne(ctx, recoveryCase)
	return err
}

// GetRecoveryCase gets a recovery case from the DB.
// If the case is not found, nil is returned with no error.
func (m *MongoService) GetRecoveryCase(ctx context.Context, id string) (*models.RecoveryCaseResourceDB, error) {
	return m.findRecoveryCase(ctx, bson.M{"_id": id})
}

// GetRecoveryCaseByCampaign gets the recovery case opened against a
// campaign's creator, if any
func (m *MongoService) GetRecoveryCaseByCampaign(ctx context.Context, campaignID string) (*models.RecoveryCaseResourceDB, error) {
	return m.findRecoveryCase(ctx, bson.M{"campaign_id": campaignID})
}

func (m *MongoService) findRecoveryCase(ctx context.Context, filter bson.M) (*models.RecoveryCaseResourceDB, error) {
	var resource models.RecoveryCaseResourceDB

	collection := m.db.Collection(m.Config.RecoveryCollection)
	dbResource := collection.FindOne(ctx, filter)

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// GetRecoveryCasesByCreator gets all recovery cases open against a creator
func (m *MongoService) GetRecoveryCasesByCreator(ctx context.Context, creatorID string) ([]models.RecoveryCaseResourceDB, error) {
	collection := m.db.Collection(m.Config.RecoveryCollection)

	cursor, err := collection.Find(ctx, bson.M{"creator_id": creatorID})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Error(err)
		}
	}()

	var cases []models.RecoveryCaseResourceDB
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// ApplyRepayment applies a creator repayment to a recovery case. The update
// is conditional on the recovered amount still being prevRecovered, so
// concurrent repayments serialise instead of double-applying.
func (m *MongoService) ApplyRepayment(ctx context.Context, id string, prevRecovered, newRecovered int64, status string, entry models.RecoveryTimelineEntryDB) error {
	collection := m.db.Collection(m.Config.RecoveryCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id, "recovered_amount": prevRecovered},
		bson.M{
			"$set": bson.M{
				"recovered_amount": newRecovered,
				"status":           status,
				"updated_at":       time.Now().Truncate(time.Millisecond),
			},
			"$push": bson.M{"timeline": entry},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// UpdateRecoveryCaseStatus transitions a recovery case between statuses
// conditionally
func (m *MongoService) UpdateRecoveryCaseStatus(ctx context.Context, id, fromStatus, toStatus string) error {
	collection := m.db.Collection(m.Config.RecoveryCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": fromStatus},
		bson.M{"$set": bson.M{
			"status":     toStatus,
			"updated_at": time.Now().Truncate(time.Millisecond),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// SetRecoveryCheckout stores the most recently opened repayment checkout on a
// recovery case
func (m *MongoService) SetRecoveryCheckout(ctx context.Context, id string, checkout *models.RecoveryCheckoutDB) error {
	collection := m.db.Collection(m.Config.RecoveryCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"checkout":   checkout,
			"updated_at": time.Now().Truncate(time.Millisecond),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

// HasTimelineOrderRef reports whether a repayment with the supplied gateway
// order reference has already been applied to the case. Used to deduplicate
// at-least-once callback delivery.
func (m *MongoService) HasTimelineOrderRef(ctx context.Context, id, orderRef string) (bool, error) {
	collection := m.db.Collection(m.Config.RecoveryCollection)

	count, err := collection.CountDocuments(ctx, bson.M{
		"_id":                id,
		"timeline.order_ref": orderRef,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateRefunds writes a batch of per-donor refunds to the DB
func (m *MongoService) CreateRefunds(ctx context.Context, refunds []models.RefundResourceDB) error {
	if len(refunds) == 0 {
		return nil
	}

	collection := m.db.Collection(m.Config.RefundCollection)

	docs := make([]interface{}, len(refunds))
	for i := range refunds {
		docs[i] = refunds[i]
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}

// GetRefundsByCampaign gets all refunds created for a campaign
func (m *MongoService) GetRefundsByCampaign(ctx context.Context, campaignID string) ([]models.RefundResourceDB, error) {
	collection := m.db.Collection(m.Config.RefundCollection)

	cursor, err := collection.Find(ctx, bson.M{"campaign_id": campaignID})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Error(err)
		}
	}()

	var refunds []models.RefundResourceDB
	if err := cursor.All(ctx, &refunds); err != nil {
		return nil, err
	}
	return refunds, nil
}

// UpdateRefundStatus marks a refund settled or failed
func (m *MongoService) UpdateRefundStatus(ctx context.Context, id, status string) error {
	collection := m.db.Collection(m.Config.RefundCollection)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}
