package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest signing secret the service will start with.
const MinJWTSecretLength = 32

var (
	ErrJWTSecretMissing  = errors.New("JWT_SECRET environment variable is required")
	ErrJWTSecretTooShort = fmt.Errorf("JWT_SECRET must be at least %d characters long", MinJWTSecretLength)
	ErrCORSWildcard      = errors.New("CORS_ORIGIN must list explicit origins; \"*\" cannot be combined with credentialed requests")
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Cookie   CookieConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Events   EventsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// CookieConfig describes how access tokens travel in cookies.
type CookieConfig struct {
	AccessTokenName  string
	SigningEnabled   bool
	Secret           string
	ApexDomain       string
	UseCookiesHeader string
}

// CacheConfig tunes the principal existence cache.
type CacheConfig struct {
	ExistenceTTLSeconds int
	ExistenceMaxSize    int
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	Origins []string
}

// EventsConfig names the Redis channel used for cache invalidation fan-out.
type EventsConfig struct {
	InvalidationChannel string
}

// Load reads configuration from environment variables, applying defaults where possible.
// A missing or short JWT secret is reported as an error so the caller can abort startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "users-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", "5005"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            getEnv("DATABASE_URL", os.Getenv("POSTGRES_DSN")),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             jwtSecret,
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Cookie: CookieConfig{
			AccessTokenName:  getEnv("COOKIE_ACCESS_TOKEN_NAME", "access_token"),
			SigningEnabled:   getEnvAsBool("COOKIE_SIGNING_ENABLED", false),
			Secret:           getEnv("COOKIE_SECRET", jwtSecret),
			ApexDomain:       getEnv("COOKIE_APEX_DOMAIN", "lead-schem.ru"),
			UseCookiesHeader: getEnv("COOKIE_MODE_HEADER", "x-use-cookies"),
		},
		Cache: CacheConfig{
			ExistenceTTLSeconds: getEnvAsInt("EXISTENCE_CACHE_TTL_SECONDS", 300),
			ExistenceMaxSize:    getEnvAsInt("EXISTENCE_CACHE_MAX_SIZE", 10000),
		},
		CORS: CORSConfig{
			Origins: getEnvAsList("CORS_ORIGIN", []string{"http://localhost:3000"}),
		},
		Events: EventsConfig{
			InvalidationChannel: getEnv("EVENTS_INVALIDATION_CHANNEL", "users-service:principal-invalidations"),
		},
	}

	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CORS.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects wildcard origins. Cookies travel cross-origin, so every
// response allows credentials.
func (c CORSConfig) Validate() error {
	for _, origin := range c.Origins {
		if origin == "*" {
			return ErrCORSWildcard
		}
	}
	return nil
}

// Validate enforces the signing secret requirements.
func (a AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	if len(a.JWTSecret) < MinJWTSecretLength {
		return ErrJWTSecretTooShort
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of tokens minted by tooling.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// ExistenceTTL returns how long an existence answer stays fresh.
func (c CacheConfig) ExistenceTTL() time.Duration {
	if c.ExistenceTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.ExistenceTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
