package config

// EnvPrefix is intentionally empty: every variable names its full CAFEPOS_ key
// in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "CAFEPOS_APP_ENV"
	EnvPort                   = "CAFEPOS_APP_PORT"
	EnvDBDSN                  = "CAFEPOS_DB_DSN"
	EnvDBHost                 = "CAFEPOS_DB_HOST"
	EnvDBUser                 = "CAFEPOS_DB_USER"
	EnvDBName                 = "CAFEPOS_DB_NAME"
	EnvRedisURL               = "CAFEPOS_REDIS_URL"
	EnvJWTSecret              = "CAFEPOS_JWT_SECRET"
	EnvJWTIssuer              = "CAFEPOS_JWT_ISSUER"
	EnvJWTExpMins             = "CAFEPOS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "CAFEPOS_REFRESH_TOKEN_TTL_MINUTES"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
