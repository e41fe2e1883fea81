package config

const (
	EnvPrefix = "LEADINTAKE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	EnvAppEnv        = "LEADINTAKE_APP_ENV"
	EnvPort          = "LEADINTAKE_APP_PORT"
	EnvAdminKey      = "LEADINTAKE_ADMIN_KEY"
	EnvPublicBaseURL = "LEADINTAKE_PUBLIC_BASE_URL"
	EnvPriceCents    = "LEADINTAKE_PRICE_CENTS"
	EnvCurrency      = "LEADINTAKE_CURRENCY"
	EnvDBDriver      = "LEADINTAKE_DB_DRIVER"
	EnvDBDSN         = "LEADINTAKE_DB_DSN"
	EnvRedisURL      = "LEADINTAKE_REDIS_URL"
	EnvStripeAPIKey  = "LEADINTAKE_STRIPE_API_KEY"
)
