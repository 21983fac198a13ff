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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Receipt       ReceiptConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAFEPOS_APP_ENV" required:"true"`
	Port         string `envconfig:"CAFEPOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAFEPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAFEPOS_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"CAFEPOS_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CAFEPOS_DB_DSN"`

	Host     string `envconfig:"CAFEPOS_DB_HOST"`
	Port     int    `envconfig:"CAFEPOS_DB_PORT" default:"5432"`
	User     string `envconfig:"CAFEPOS_DB_USER"`
	Password string `envconfig:"CAFEPOS_DB_PASSWORD"`
	Name     string `envconfig:"CAFEPOS_DB_NAME"`
	SSLMode  string `envconfig:"CAFEPOS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAFEPOS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CAFEPOS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CAFEPOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAFEPOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CAFEPOS_REDIS_URL"`
	Address      string        `envconfig:"CAFEPOS_REDIS_ADDR"`
	Password     string        `envconfig:"CAFEPOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAFEPOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAFEPOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAFEPOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAFEPOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAFEPOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAFEPOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CAFEPOS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CAFEPOS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CAFEPOS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CAFEPOS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CAFEPOS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CAFEPOS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CAFEPOS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CAFEPOS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CAFEPOS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CAFEPOS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"CAFEPOS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"CAFEPOS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// ReceiptConfig carries the page geometry used when rendering invoice PDFs.
type ReceiptConfig struct {
	PageSize   string  `envconfig:"CAFEPOS_RECEIPT_PAGE_SIZE" default:"A4"`
	MarginMM   float64 `envconfig:"CAFEPOS_RECEIPT_MARGIN_MM" default:"15"`
	FontFamily string  `envconfig:"CAFEPOS_RECEIPT_FONT" default:"Helvetica"`
	ShopName   string  `envconfig:"CAFEPOS_RECEIPT_SHOP_NAME" default:"CafePOS"`
	ShopLine   string  `envconfig:"CAFEPOS_RECEIPT_SHOP_LINE"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CAFEPOS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
