package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "TRADEBAZAAR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TRADEBAZAAR_DB_DSN"
	EnvDBHost = "TRADEBAZAAR_DB_HOST"
	EnvDBUser = "TRADEBAZAAR_DB_USER"
	EnvDBName = "TRADEBAZAAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	PubSub        PubSubConfig
	Checkout      CheckoutConfig
	Integrations  IntegrationsConfig
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
	Env          string `envconfig:"TRADEBAZAAR_APP_ENV" required:"true"`
	Port         string `envconfig:"TRADEBAZAAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TRADEBAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRADEBAZAAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TRADEBAZAAR_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TRADEBAZAAR_DB_DSN"`
	Driver string `envconfig:"TRADEBAZAAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRADEBAZAAR_DB_HOST"`
	LegacyPort     int    `envconfig:"TRADEBAZAAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRADEBAZAAR_DB_USER"`
	LegacyPassword string `envconfig:"TRADEBAZAAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRADEBAZAAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRADEBAZAAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRADEBAZAAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRADEBAZAAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRADEBAZAAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRADEBAZAAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRADEBAZAAR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TRADEBAZAAR_REDIS_ADDR"`
	Password     string        `envconfig:"TRADEBAZAAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRADEBAZAAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRADEBAZAAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRADEBAZAAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRADEBAZAAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRADEBAZAAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRADEBAZAAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                   string `envconfig:"TRADEBAZAAR_JWT_SECRET" required:"true"`
	Issuer                   string `envconfig:"TRADEBAZAAR_JWT_ISSUER" required:"true"`
	LoginTTLHours            int    `envconfig:"TRADEBAZAAR_JWT_LOGIN_TTL_HOURS" default:"24"`
	RegistrationTTLHours     int    `envconfig:"TRADEBAZAAR_JWT_REGISTRATION_TTL_HOURS" default:"168"`
	EmailVerifyTokenTTLHours int    `envconfig:"TRADEBAZAAR_JWT_EMAIL_VERIFY_TTL_HOURS" default:"48"`
}

// LoginTTL returns the lifetime of tokens minted at login.
func (j JWTConfig) LoginTTL() time.Duration {
	return time.Duration(j.LoginTTLHours) * time.Hour
}

// RegistrationTTL returns the lifetime of tokens minted at registration.
func (j JWTConfig) RegistrationTTL() time.Duration {
	return time.Duration(j.RegistrationTTLHours) * time.Hour
}

// EmailVerifyTTL returns the lifetime of email verification tokens.
func (j JWTConfig) EmailVerifyTTL() time.Duration {
	return time.Duration(j.EmailVerifyTokenTTLHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TRADEBAZAAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TRADEBAZAAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TRADEBAZAAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TRADEBAZAAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TRADEBAZAAR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TRADEBAZAAR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TRADEBAZAAR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TRADEBAZAAR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TRADEBAZAAR_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TRADEBAZAAR_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TRADEBAZAAR_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TRADEBAZAAR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TRADEBAZAAR_AUTO_MIGRATE" default:"false"`
}

type PubSubConfig struct {
	ProjectID                string `envconfig:"TRADEBAZAAR_PUBSUB_PROJECT_ID"`
	NotificationTopic        string `envconfig:"TRADEBAZAAR_PUBSUB_NOTIFICATION_TOPIC" default:"tb-notification-events"`
	NotificationSubscription string `envconfig:"TRADEBAZAAR_PUBSUB_NOTIFICATION_SUBSCRIPTION" default:"tb-notification-events-worker"`
}

type CheckoutConfig struct {
	FreeShippingThreshold string `envconfig:"TRADEBAZAAR_FREE_SHIPPING_THRESHOLD" default:"100"`
	FlatShippingFee       string `envconfig:"TRADEBAZAAR_FLAT_SHIPPING_FEE" default:"50"`
	TaxRatePercent        string `envconfig:"TRADEBAZAAR_TAX_RATE_PERCENT" default:"18"`
}

type IntegrationsConfig struct {
	GSTVerifyEnabled bool   `envconfig:"TRADEBAZAAR_GST_VERIFY_ENABLED" default:"true"`
	ERPBaseURL       string `envconfig:"TRADEBAZAAR_ERP_BASE_URL"`
	AIProvider       string `envconfig:"TRADEBAZAAR_AI_PROVIDER" default:"mock"`
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
