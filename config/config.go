// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"sync"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr            string `env:"BIND_ADDR"                   flag:"bind-addr"                   flagDesc:"Bind address"`
	Database            string `env:"MONGODB_DATABASE"            flag:"mongodb-database"            flagDesc:"MongoDB database for data"`
	MongoDBURL          string `env:"MONGODB_URL"                 flag:"mongodb-url"                 flagDesc:"MongoDB server URL"`
	EscrowCollection    string `env:"MONGODB_ESCROW_COLLECTION"   flag:"mongodb-escrow-collection"   flagDesc:"MongoDB collection for escrow withdrawal requests"`
	VoteCollection      string `env:"MONGODB_VOTE_COLLECTION"     flag:"mongodb-vote-collection"     flagDesc:"MongoDB collection for escrow votes"`
	CampaignCollection  string `env:"MONGODB_CAMPAIGN_COLLECTION" flag:"mongodb-campaign-collection" flagDesc:"MongoDB collection for campaigns"`
	DonationCollection  string `env:"MONGODB_DONATION_COLLECTION" flag:"mongodb-donation-collection" flagDesc:"MongoDB collection for donations"`
	RecoveryCollection  string `env:"MONGODB_RECOVERY_COLLECTION" flag:"mongodb-recovery-collection" flagDesc:"MongoDB collection for recovery cases"`
	RefundCollection    string `env:"MONGODB_REFUND_COLLECTION"   flag:"mongodb-refund-collection"   flagDesc:"MongoDB collection for refunds"`
	EscrowWebURL        string `env:"ESCROW_WEB_URL"              flag:"escrow-web-url"              flagDesc:"Base URL for the platform web frontend"`
	EscrowAPIURL        string `env:"ESCROW_API_URL"              flag:"escrow-api-url"              flagDesc:"Base URL for this service, used to build gateway callback URLs"`
	SePayURL            string `env:"SEPAY_URL"                   flag:"sepay-url"                   flagDesc:"URL used to make calls to SePay"`
	SePayMerchantID     string `env:"SEPAY_MERCHANT_ID"           flag:"sepay-merchant-id"           flagDesc:"Merchant ID used to authenticate API calls with SePay"`
	SePaySecret         string `env:"SEPAY_SECRET"                flag:"sepay-secret"                flagDesc:"Shared secret used to sign SePay checkout requests"`
	PayPalClientID      string `env:"PAYPAL_CLIENT_ID"            flag:"paypal-client-id"            flagDesc:"Client ID used to authenticate API calls with PayPal"`
	PayPalClientSecret  string `env:"PAYPAL_CLIENT_SECRET"        flag:"paypal-client-secret"        flagDesc:"Client secret used to authenticate API calls with PayPal"`
	PayPalEnv           string `env:"PAYPAL_ENV"                  flag:"paypal-env"                  flagDesc:"PayPal environment (test or live)"`
	VotingWindowDays    int    `env:"VOTING_WINDOW_DAYS"          flag:"voting-window-days"          flagDesc:"Length of the escrow voting window in days"`
	VotingSweepInterval int    `env:"VOTING_SWEEP_INTERVAL"       flag:"voting-sweep-interval"       flagDesc:"Interval in seconds between voting expiry sweeps"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		Database:            "escrow",
		EscrowCollection:    "escrows",
		VoteCollection:      "escrow_votes",
		CampaignCollection:  "campaigns",
		DonationCollection:  "donations",
		RecoveryCollection:  "recovery_cases",
		RefundCollection:    "refunds",
		VotingWindowDays:    3,
		VotingSweepInterval: 60,
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
