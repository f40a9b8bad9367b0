package config

// Environment variable names shared between Load, tests, and error
// messages. Keep these in sync with the envconfig tags in config.go.
const (
	EnvPrefix = "SELLERBRIDGE"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv = "SELLERBRIDGE_APP_ENV"
	EnvPort   = "SELLERBRIDGE_APP_PORT"

	EnvDBDSN  = "SELLERBRIDGE_DB_DSN"
	EnvDBHost = "SELLERBRIDGE_DB_HOST"
	EnvDBUser = "SELLERBRIDGE_DB_USER"
	EnvDBName = "SELLERBRIDGE_DB_NAME"

	EnvRedisURL = "SELLERBRIDGE_REDIS_URL"

	EnvJWTSecret              = "SELLERBRIDGE_JWT_SECRET"
	EnvJWTIssuer              = "SELLERBRIDGE_JWT_ISSUER"
	EnvJWTExpMins             = "SELLERBRIDGE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "SELLERBRIDGE_REFRESH_TOKEN_TTL_MINUTES"

	EnvGCPProjectID = "SELLERBRIDGE_GCP_PROJECT_ID"

	EnvPubSubAuthorizationTopic = "SELLERBRIDGE_PUBSUB_AUTHORIZATION_TOPIC"
	EnvPubSubAuthorizationSub   = "SELLERBRIDGE_PUBSUB_AUTHORIZATION_SUBSCRIPTION"
	EnvPubSubCatalogTopic       = "SELLERBRIDGE_PUBSUB_CATALOG_TOPIC"
	EnvPubSubCatalogSub         = "SELLERBRIDGE_PUBSUB_CATALOG_SUBSCRIPTION"
)

// legacyDBEnvVars lists the discrete DB vars accepted when a full DSN
// is not provided.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
