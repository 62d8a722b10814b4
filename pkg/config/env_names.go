package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "PRICEPILOT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "PRICEPILOT_APP_ENV"
	EnvPort                   = "PRICEPILOT_APP_PORT"
	EnvDBDSN                  = "PRICEPILOT_DB_DSN"
	EnvDBHost                 = "PRICEPILOT_DB_HOST"
	EnvDBUser                 = "PRICEPILOT_DB_USER"
	EnvDBName                 = "PRICEPILOT_DB_NAME"
	EnvRedisURL               = "PRICEPILOT_REDIS_URL"
	EnvJWTSecret              = "PRICEPILOT_JWT_SECRET"
	EnvJWTIssuer              = "PRICEPILOT_JWT_ISSUER"
	EnvJWTExpMins             = "PRICEPILOT_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "PRICEPILOT_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
