package config

// EnvPrefix is passed to envconfig; every field carries an explicit tag so the prefix is informational.
const EnvPrefix = "FLORIST"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverLocal = "local"
	StorageDriverGCS   = "gcs"
)

const (
	EnvAppEnv   = "FLORIST_APP_ENV"
	EnvPort     = "FLORIST_APP_PORT"
	EnvLogLevel = "FLORIST_LOG_LEVEL"

	EnvDBDSN  = "FLORIST_DB_DSN"
	EnvDBHost = "FLORIST_DB_HOST"
	EnvDBPort = "FLORIST_DB_PORT"
	EnvDBUser = "FLORIST_DB_USER"
	EnvDBPass = "FLORIST_DB_PASSWORD"
	EnvDBName = "FLORIST_DB_NAME"

	EnvRedisURL = "FLORIST_REDIS_URL"

	EnvJWTSecret         = "FLORIST_JWT_SECRET"
	EnvJWTIssuer         = "FLORIST_JWT_ISSUER"
	EnvJWTExpMins        = "FLORIST_JWT_EXPIRATION_MINUTES"
	EnvJWTRefreshExpMins = "FLORIST_JWT_REFRESH_EXPIRATION_MINUTES"

	EnvBcryptCost = "FLORIST_BCRYPT_COST"

	EnvSEOBaseURL    = "FLORIST_SEO_BASE_URL"
	EnvSEOBackendURL = "FLORIST_SEO_BACKEND_URL"

	EnvCORSAllowedOrigins = "FLORIST_CORS_ALLOWED_ORIGINS"

	EnvStorageDriver = "FLORIST_STORAGE_DRIVER"
	EnvStoragePath   = "FLORIST_STORAGE_LOCAL_PATH"
	EnvGCSBucket     = "FLORIST_GCS_BUCKET_NAME"

	EnvAutoMigrate = "FLORIST_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
