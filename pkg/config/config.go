package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the app reads.
	EnvPrefix = "VIVAHSETU"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "VIVAHSETU_DB_DSN"
	EnvDBHost = "VIVAHSETU_DB_HOST"
	EnvDBUser = "VIVAHSETU_DB_USER"
	EnvDBName = "VIVAHSETU_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	RateLimit     RateLimitConfig
	AuthRateLimit AuthRateLimitConfig
	OTP           OTPConfig
	SMTP          SMTPConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
	Places        PlacesConfig
	Cron          CronConfig
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
	Env          string `envconfig:"VIVAHSETU_APP_ENV" required:"true"`
	Port         string `envconfig:"VIVAHSETU_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VIVAHSETU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VIVAHSETU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VIVAHSETU_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VIVAHSETU_DB_DSN"`
	Driver string `envconfig:"VIVAHSETU_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VIVAHSETU_DB_HOST"`
	LegacyPort     int    `envconfig:"VIVAHSETU_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VIVAHSETU_DB_USER"`
	LegacyPassword string `envconfig:"VIVAHSETU_DB_PASSWORD"`
	LegacyName     string `envconfig:"VIVAHSETU_DB_NAME"`
	LegacySSLMode  string `envconfig:"VIVAHSETU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VIVAHSETU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VIVAHSETU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VIVAHSETU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VIVAHSETU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VIVAHSETU_REDIS_URL"`
	Address      string        `envconfig:"VIVAHSETU_REDIS_ADDR"`
	Password     string        `envconfig:"VIVAHSETU_REDIS_PASSWORD"`
	DB           int           `envconfig:"VIVAHSETU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VIVAHSETU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VIVAHSETU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VIVAHSETU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VIVAHSETU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VIVAHSETU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a Redis endpoint was provided. Without one the
// API falls back to in-process stores for sessions, codes, and rate limits.
func (c RedisConfig) Configured() bool {
	return c.URL != "" || c.Address != ""
}

type JWTConfig struct {
	Secret                 string `envconfig:"VIVAHSETU_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VIVAHSETU_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VIVAHSETU_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VIVAHSETU_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VIVAHSETU_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VIVAHSETU_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VIVAHSETU_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VIVAHSETU_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VIVAHSETU_ARGON_KEY_LEN" default:"32"`
}

// RateLimitConfig throttles general API traffic per client IP.
type RateLimitConfig struct {
	Enabled bool          `envconfig:"VIVAHSETU_RATE_LIMIT_ENABLED" default:"true"`
	Window  time.Duration `envconfig:"VIVAHSETU_RATE_LIMIT_WINDOW" default:"1m"`
	Limit   int           `envconfig:"VIVAHSETU_RATE_LIMIT_MAX" default:"100"`
}

type AuthRateLimitConfig struct {
	LoginWindow       time.Duration `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit   int           `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit      int           `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow      time.Duration `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit  int           `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit     int           `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
	OTPWindow         time.Duration `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_OTP_WINDOW" default:"5m"`
	OTPEmailLimit     int           `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit        int           `envconfig:"VIVAHSETU_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"10"`
}

// OTPConfig governs one-time-code generation for password resets.
type OTPConfig struct {
	Length     int           `envconfig:"VIVAHSETU_OTP_LENGTH" default:"6"`
	TTL        time.Duration `envconfig:"VIVAHSETU_OTP_TTL" default:"5m"`
	MaxRetries int           `envconfig:"VIVAHSETU_OTP_MAIL_MAX_RETRIES" default:"3"`
}

type SMTPConfig struct {
	Host     string `envconfig:"VIVAHSETU_SMTP_HOST"`
	Port     int    `envconfig:"VIVAHSETU_SMTP_PORT" default:"587"`
	Username string `envconfig:"VIVAHSETU_SMTP_USERNAME"`
	Password string `envconfig:"VIVAHSETU_SMTP_PASSWORD"`
	From     string `envconfig:"VIVAHSETU_SMTP_FROM" default:"no-reply@vivahsetu.com"`
}

// Configured reports whether a real SMTP transport is available; when false
// the mailer falls back to its log transport.
func (s SMTPConfig) Configured() bool {
	return strings.TrimSpace(s.Host) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VIVAHSETU_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VIVAHSETU_AUTO_MIGRATE" default:"false"`
	AuditLogs   bool `envconfig:"VIVAHSETU_FEATURE_AUDIT_LOGS" default:"true"`
}

type PlacesConfig struct {
	APIKey string `envconfig:"VIVAHSETU_PLACES_API_KEY"`
}

type CronConfig struct {
	Interval                 time.Duration `envconfig:"VIVAHSETU_CRON_INTERVAL" default:"24h"`
	PostWeddingRetentionDays int           `envconfig:"VIVAHSETU_POST_WEDDING_RETENTION_DAYS" default:"30"`
	NotificationRetention    int           `envconfig:"VIVAHSETU_NOTIFICATION_RETENTION_DAYS" default:"30"`
	AuditLogRetention        int           `envconfig:"VIVAHSETU_AUDIT_LOG_RETENTION_DAYS" default:"90"`
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
