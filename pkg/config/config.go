package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Eventing      EventingConfig
	Authorization AuthorizationConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Authorization.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SELLERBRIDGE_APP_ENV" required:"true"`
	Port         string `envconfig:"SELLERBRIDGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SELLERBRIDGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SELLERBRIDGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SELLERBRIDGE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SELLERBRIDGE_DB_DSN"`
	Driver string `envconfig:"SELLERBRIDGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SELLERBRIDGE_DB_HOST"`
	LegacyPort     int    `envconfig:"SELLERBRIDGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SELLERBRIDGE_DB_USER"`
	LegacyPassword string `envconfig:"SELLERBRIDGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SELLERBRIDGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SELLERBRIDGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SELLERBRIDGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SELLERBRIDGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SELLERBRIDGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SELLERBRIDGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SELLERBRIDGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SELLERBRIDGE_REDIS_ADDR"`
	Password     string        `envconfig:"SELLERBRIDGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SELLERBRIDGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SELLERBRIDGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SELLERBRIDGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SELLERBRIDGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SELLERBRIDGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SELLERBRIDGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SELLERBRIDGE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SELLERBRIDGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SELLERBRIDGE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SELLERBRIDGE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SELLERBRIDGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SELLERBRIDGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SELLERBRIDGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SELLERBRIDGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SELLERBRIDGE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SELLERBRIDGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SELLERBRIDGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SELLERBRIDGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SELLERBRIDGE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SELLERBRIDGE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SELLERBRIDGE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SELLERBRIDGE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SELLERBRIDGE_AUTO_MIGRATE" default:"false"`
}

type EventingConfig struct {
	OutboxIdempotencyTTL time.Duration `envconfig:"SELLERBRIDGE_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

// AuthorizationConfig tunes the seller-product authorization workflow.
// Cooldown values are measured in days and must stay within [1, 365].
type AuthorizationConfig struct {
	MaxApprovedPerSeller int `envconfig:"SELLERBRIDGE_AUTHZ_MAX_APPROVED_PER_SELLER" default:"10"`
	DefaultCooldownDays  int `envconfig:"SELLERBRIDGE_AUTHZ_DEFAULT_COOLDOWN_DAYS" default:"30"`
	RevokeCooldownDays   int `envconfig:"SELLERBRIDGE_AUTHZ_REVOKE_COOLDOWN_DAYS" default:"30"`
	MinReasonLength      int `envconfig:"SELLERBRIDGE_AUTHZ_MIN_REASON_LENGTH" default:"10"`
}

const (
	CooldownDaysMin = 1
	CooldownDaysMax = 365
)

func (a AuthorizationConfig) validate() error {
	if a.MaxApprovedPerSeller < 1 {
		return fmt.Errorf("SELLERBRIDGE_AUTHZ_MAX_APPROVED_PER_SELLER must be at least 1, got %d", a.MaxApprovedPerSeller)
	}
	for name, days := range map[string]int{
		"SELLERBRIDGE_AUTHZ_DEFAULT_COOLDOWN_DAYS": a.DefaultCooldownDays,
		"SELLERBRIDGE_AUTHZ_REVOKE_COOLDOWN_DAYS":  a.RevokeCooldownDays,
	} {
		if days < CooldownDaysMin || days > CooldownDaysMax {
			return fmt.Errorf("%s must be within [%d, %d], got %d", name, CooldownDaysMin, CooldownDaysMax, days)
		}
	}
	if a.MinReasonLength < 1 {
		return fmt.Errorf("SELLERBRIDGE_AUTHZ_MIN_REASON_LENGTH must be at least 1, got %d", a.MinReasonLength)
	}
	return nil
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SELLERBRIDGE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"SELLERBRIDGE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SELLERBRIDGE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	AuthorizationTopic        string `envconfig:"SELLERBRIDGE_PUBSUB_AUTHORIZATION_TOPIC" required:"true"`
	AuthorizationSubscription string `envconfig:"SELLERBRIDGE_PUBSUB_AUTHORIZATION_SUBSCRIPTION" required:"true"`
	CatalogTopic              string `envconfig:"SELLERBRIDGE_PUBSUB_CATALOG_TOPIC" required:"true"`
	CatalogSubscription       string `envconfig:"SELLERBRIDGE_PUBSUB_CATALOG_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"SELLERBRIDGE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"SELLERBRIDGE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"SELLERBRIDGE_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
