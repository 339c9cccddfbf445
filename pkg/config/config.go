package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const minJWTSecretLength = 32

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	SEO           SEOConfig
	CORS          CORSConfig
	Storage       StorageConfig
	GCP           GCPConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.JWT.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FLORIST_APP_ENV" required:"true"`
	Port         string `envconfig:"FLORIST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FLORIST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLORIST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FLORIST_DB_DSN"`
	Driver string `envconfig:"FLORIST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FLORIST_DB_HOST"`
	LegacyPort     int    `envconfig:"FLORIST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLORIST_DB_USER"`
	LegacyPassword string `envconfig:"FLORIST_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLORIST_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLORIST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLORIST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLORIST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLORIST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLORIST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; an empty URL and address disables redis-backed features.
type RedisConfig struct {
	URL          string        `envconfig:"FLORIST_REDIS_URL"`
	Address      string        `envconfig:"FLORIST_REDIS_ADDR"`
	Password     string        `envconfig:"FLORIST_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLORIST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLORIST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLORIST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLORIST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLORIST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLORIST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret                   string `envconfig:"FLORIST_JWT_SECRET" required:"true"`
	Issuer                   string `envconfig:"FLORIST_JWT_ISSUER" default:"floristeria-akasia"`
	ExpirationMinutes        int    `envconfig:"FLORIST_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshExpirationMinutes int    `envconfig:"FLORIST_JWT_REFRESH_EXPIRATION_MINUTES" default:"10080"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshExpirationMinutes) * time.Minute
}

func (j JWTConfig) validate() error {
	if len(j.Secret) < minJWTSecretLength {
		return fmt.Errorf("%s must be at least %d bytes", EnvJWTSecret, minJWTSecretLength)
	}
	if j.ExpirationMinutes <= 0 {
		return fmt.Errorf("%s must be positive", EnvJWTExpMins)
	}
	if j.RefreshExpirationMinutes <= j.ExpirationMinutes {
		return fmt.Errorf("%s must exceed %s", EnvJWTRefreshExpMins, EnvJWTExpMins)
	}
	return nil
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"FLORIST_BCRYPT_COST" default:"12"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"FLORIST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentityLimit    int           `envconfig:"FLORIST_AUTH_RATE_LIMIT_LOGIN_IDENTITY_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"FLORIST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"FLORIST_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIdentityLimit int           `envconfig:"FLORIST_AUTH_RATE_LIMIT_REGISTER_IDENTITY_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"FLORIST_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SEOConfig struct {
	BaseURL    string `envconfig:"FLORIST_SEO_BASE_URL" default:"https://www.floristeriaakasia.com.co"`
	BackendURL string `envconfig:"FLORIST_SEO_BACKEND_URL" default:"https://backend.floristeriaakasia.com.co"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FLORIST_CORS_ALLOWED_ORIGINS" default:"http://localhost:4200,https://www.floristeriaakasia.com.co"`
}

type StorageConfig struct {
	Driver      string `envconfig:"FLORIST_STORAGE_DRIVER" default:"local"`
	LocalPath   string `envconfig:"FLORIST_STORAGE_LOCAL_PATH" default:"./images"`
	MaxUploadMB int    `envconfig:"FLORIST_STORAGE_MAX_UPLOAD_MB" default:"10"`
	BucketName  string `envconfig:"FLORIST_GCS_BUCKET_NAME"`
}

// MaxUploadBytes returns the upload size limit in bytes.
func (s StorageConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case StorageDriverLocal:
		return nil
	case StorageDriverGCS:
		if s.BucketName == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvGCSBucket, EnvStorageDriver, StorageDriverGCS)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, s.Driver)
	}
}

type GCPConfig struct {
	CredentialsJSON        string `envconfig:"FLORIST_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FLORIST_GOOGLE_APPLICATION_CREDENTIALS"`
}

type FeatureFlagsConfig struct {
	AutoMigrate    bool `envconfig:"FLORIST_AUTO_MIGRATE" default:"false"`
	MetricsEnabled bool `envconfig:"FLORIST_METRICS_ENABLED" default:"true"`
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
