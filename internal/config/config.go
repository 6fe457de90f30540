// Package config loads the process configuration from BLOCKFEED_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/gabapcia/blockfeed/internal/pkg/validator"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const Prefix = "BLOCKFEED"

// Identity tier names accepted by IdentityTiers.
const (
	TierIndexer    = "indexer"
	TierMoments    = "moments"
	TierLSP4       = "lsp4"
	TierCollection = "lsp8-collection"
)

// Notifier backends.
const (
	NotifierNone  = "none"
	NotifierRedis = "redis"
	NotifierKafka = "kafka"
)

var ErrMissingMomentsURL = errors.New("moments tier enabled without BLOCKFEED_MOMENTS_API_URL")

type Redis struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"gte=0"`
}

type Kafka struct {
	Brokers     []string `envconfig:"BROKERS" default:"localhost:9092"`
	TopicPrefix string   `envconfig:"TOPIC_PREFIX" default:"blockfeed-activity"`
}

type Config struct {
	APIBaseURL      string `envconfig:"API_BASE_URL" validate:"required,url"`
	RPCEndpoint     string `envconfig:"RPC_ENDPOINT" default:"https://42.rpc.thirdweb.com" validate:"required,url"`
	GraphQLEndpoint string `envconfig:"GRAPHQL_ENDPOINT" default:"https://envio.lukso-mainnet.universal.tech/v1/graphql" validate:"required,url"`
	MomentsAPIURL   string `envconfig:"MOMENTS_API_URL" validate:"omitempty,url"`
	IPFSGateway     string `envconfig:"IPFS_GATEWAY" default:"https://api.universalprofile.cloud/ipfs/" validate:"required,url"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	HTTPRetries int           `envconfig:"HTTP_RETRIES" default:"2" validate:"gte=0"`

	PollInterval      time.Duration `envconfig:"POLL_INTERVAL" default:"15s" validate:"gt=0"`
	MinVisibleInitial int           `envconfig:"MIN_VISIBLE_INITIAL" default:"25" validate:"gt=0"`
	MinVisibleMore    int           `envconfig:"MIN_VISIBLE_MORE" default:"10" validate:"gt=0"`
	MaxAutoFetches    int           `envconfig:"MAX_AUTO_FETCHES" default:"20" validate:"gte=0"`
	ClockInterval     time.Duration `envconfig:"CLOCK_INTERVAL" default:"5m" validate:"gt=0"`

	ResolveDebounce time.Duration `envconfig:"RESOLVE_DEBOUNCE" default:"100ms" validate:"gt=0"`
	IdentityTiers   []string      `envconfig:"IDENTITY_TIERS" default:"indexer,lsp4" validate:"dive,oneof=indexer moments lsp4 lsp8-collection"`
	TierRateLimit   float64       `envconfig:"TIER_RATE_LIMIT" default:"5" validate:"gt=0"`
	TierBurst       int           `envconfig:"TIER_BURST" default:"5" validate:"gt=0"`

	Notifier string `envconfig:"NOTIFIER" default:"none" validate:"oneof=none redis kafka"`
	Redis    Redis  `envconfig:"REDIS"`
	Kafka    Kafka  `envconfig:"KAFKA"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Telemetry bool   `envconfig:"TELEMETRY" default:"false"`
}

// HasTier reports whether the named identity tier is enabled.
func (c Config) HasTier(name string) bool {
	return slices.Contains(c.IdentityTiers, name)
}

// Load reads the configuration. Files are loaded with godotenv before the
// environment is parsed; variables already set win over the files. A missing
// default ".env" is not an error, explicitly listed files must exist.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	if cfg.HasTier(TierMoments) && cfg.MomentsAPIURL == "" {
		return Config{}, ErrMissingMomentsURL
	}

	return cfg, nil
}
