package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "HCI"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv            = "HCI_APP_ENV"
	EnvPort              = "HCI_APP_PORT"
	EnvAppURL            = "HCI_APP_URL"
	EnvDBDSN             = "HCI_DB_DSN"
	EnvDBHost            = "HCI_DB_HOST"
	EnvDBUser            = "HCI_DB_USER"
	EnvDBName            = "HCI_DB_NAME"
	EnvRedisURL          = "HCI_REDIS_URL"
	EnvSessionSecret     = "HCI_SESSION_SECRET"
	EnvSessionIssuer     = "HCI_SESSION_ISSUER"
	EnvHandCashAppID     = "HCI_HANDCASH_APP_ID"
	EnvHandCashAppSecret = "HCI_HANDCASH_APP_SECRET"
	EnvMinterAppID       = "HCI_HANDCASH_MINTER_APP_ID"
	EnvMinterAppSecret   = "HCI_HANDCASH_MINTER_APP_SECRET"
	EnvMinterAuthToken   = "HCI_HANDCASH_MINTER_AUTH_TOKEN"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	HandCash     HandCashConfig
	Minter       MinterConfig
	Mint         MintConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HCI_APP_ENV" required:"true"`
	Port         string `envconfig:"HCI_APP_PORT" required:"true"`
	PublicURL    string `envconfig:"HCI_APP_URL" required:"true"`
	LogLevel     string `envconfig:"HCI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HCI_LOG_WARN_STACK" default:"false"`
	// CORSOrigins supplements the built-in localhost origins, comma separated.
	CORSOrigins []string `envconfig:"HCI_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// WebhookURL is the callback HandCash invokes for payment notifications.
func (a AppConfig) WebhookURL() string {
	return strings.TrimRight(a.PublicURL, "/") + "/api/webhooks/handcash"
}

// RedirectURL is where the browser lands after a completed payment.
func (a AppConfig) RedirectURL() string {
	return strings.TrimRight(a.PublicURL, "/") + "/dashboard"
}

type DBConfig struct {
	DSN    string `envconfig:"HCI_DB_DSN"`
	Driver string `envconfig:"HCI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HCI_DB_HOST"`
	LegacyPort     int    `envconfig:"HCI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HCI_DB_USER"`
	LegacyPassword string `envconfig:"HCI_DB_PASSWORD"`
	LegacyName     string `envconfig:"HCI_DB_NAME"`
	LegacySSLMode  string `envconfig:"HCI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HCI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HCI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HCI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HCI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HCI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HCI_REDIS_ADDR"`
	Password     string        `envconfig:"HCI_REDIS_PASSWORD"`
	DB           int           `envconfig:"HCI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HCI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HCI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HCI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HCI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HCI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the signed session cookie and its Redis-backed state.
type SessionConfig struct {
	Secret     string `envconfig:"HCI_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"HCI_SESSION_ISSUER" default:"handcash-integration"`
	TTLMinutes int    `envconfig:"HCI_SESSION_TTL_MINUTES" default:"1440"`
	CookieName string `envconfig:"HCI_SESSION_COOKIE_NAME" default:"hc_session"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// HandCashConfig holds the consumer-app credentials used for profile,
// payment-request, and inventory calls on behalf of a connected wallet.
type HandCashConfig struct {
	AppID     string `envconfig:"HCI_HANDCASH_APP_ID" required:"true"`
	AppSecret string `envconfig:"HCI_HANDCASH_APP_SECRET" required:"true"`
	BaseURL   string `envconfig:"HCI_HANDCASH_BASE_URL" default:"https://cloud.handcash.io"`
	// PayDestination is the handle or paymail that receives payment requests.
	PayDestination string `envconfig:"HCI_HANDCASH_PAY_DESTINATION"`
}

// MinterConfig holds the service-level business wallet used for item
// creation orders. Distinct credentials from the consumer app.
type MinterConfig struct {
	AppID     string `envconfig:"HCI_HANDCASH_MINTER_APP_ID" required:"true"`
	AppSecret string `envconfig:"HCI_HANDCASH_MINTER_APP_SECRET" required:"true"`
	AuthToken string `envconfig:"HCI_HANDCASH_MINTER_AUTH_TOKEN" required:"true"`
}

// MintConfig tunes the creation-order poll loop.
type MintConfig struct {
	PollInitialDelay      time.Duration `envconfig:"HCI_MINT_POLL_INITIAL_DELAY" default:"1s"`
	PollMaxInterval       time.Duration `envconfig:"HCI_MINT_POLL_MAX_INTERVAL" default:"10s"`
	PollTimeout           time.Duration `envconfig:"HCI_MINT_POLL_TIMEOUT" default:"2m"`
	CollectionSettleDelay time.Duration `envconfig:"HCI_MINT_COLLECTION_SETTLE_DELAY" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HCI_AUTO_MIGRATE" default:"false"`
	// WebhookMint triggers a default-item mint when a payment completes.
	// Off until confirmed as intended product behavior.
	WebhookMint bool `envconfig:"HCI_FEATURE_WEBHOOK_MINT" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
