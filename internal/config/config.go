package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string
	DbMaxConn int32

	MigrateOnStart bool

	JWTSecret     string
	SessionTTL    time.Duration
	SessionCookie string
	CookieSecure  bool

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	CORSOrigins    []string
	LoginRateLimit int

	MediaStorage      string // local|s3
	MediaRoot         string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — логгер строится уже из готового конфига.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	ttl, err := time.ParseDuration(def(os.Getenv("SESSION_TTL"), "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	maxConns, err := strconv.Atoi(def(os.Getenv("DB_MAX_CONNS"), "10"))
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_CONNS: %w", err)
	}
	rate, err := strconv.Atoi(def(os.Getenv("LOGIN_RATE_LIMIT"), "10"))
	if err != nil {
		return nil, fmt.Errorf("LOGIN_RATE_LIMIT: %w", err)
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),
		DbMaxConn: int32(maxConns),

		MigrateOnStart: parseBool(def(os.Getenv("MIGRATE_ON_START"), "true")),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    ttl,
		SessionCookie: def(os.Getenv("SESSION_COOKIE"), "formulator_session"),
		CookieSecure:  parseBool(os.Getenv("COOKIE_SECURE")),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		CORSOrigins:    splitCSV(def(os.Getenv("CORS_ORIGINS"), "*")),
		LoginRateLimit: rate,

		MediaStorage:      strings.ToLower(def(os.Getenv("MEDIA_STORAGE"), "local")),
		MediaRoot:         def(os.Getenv("MEDIA_ROOT"), "public"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          def(os.Getenv("S3_REGION"), "auto"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET is required in prod")
		}
		warnings = append(warnings, "JWT_SECRET is empty")
	}

	if c.MediaStorage == "s3" && c.S3Bucket == "" {
		return nil, fmt.Errorf("MEDIA_STORAGE=s3 requires S3_BUCKET")
	}
	if c.MediaStorage != "s3" && c.MediaStorage != "local" {
		warnings = append(warnings, "unknown MEDIA_STORAGE, falling back to local")
	}

	if c.Env == "prod" && !c.CookieSecure {
		warnings = append(warnings, "COOKIE_SECURE is off in prod")
	}

	return warnings, nil
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

func splitCSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
