package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is only acceptable outside production.
const DevJWTSecret = "dev-only-secret-change-me"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port string
	Env  string

	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string

	JWTSecret string
	TokenTTL  time.Duration

	CORSAllowedOrigins []string
	DemoMode           bool

	LoginMaxAttempts int
	LoginLockout     time.Duration

	LogLevel  string
	LogPretty bool

	// parseErrors holds env values that could not be parsed; Validate
	// reports them.
	parseErrors []string
}

func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	var bad []string
	cfg := Config{
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("APP_ENV", "development"),

		DatabaseDriver: getEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/finance.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvDuration(&bad, "TOKEN_TTL", 168*time.Hour),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DemoMode:           getEnvBool(&bad, "DEMO_MODE", false),

		LoginMaxAttempts: getEnvInt(&bad, "LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     getEnvDuration(&bad, "LOGIN_LOCKOUT", 15*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool(&bad, "LOG_PRETTY", false),
	}

	cfg.parseErrors = bad

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDatabaseURL(
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "password"),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "finance_db"),
		)
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = DevJWTSecret
	}

	return cfg, cfg.Validate()
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UsingDevSecret reports whether tokens are signed with the built-in secret.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// Validate returns every problem at once rather than stopping at the first.
func (c Config) Validate() error {
	problems := append([]string(nil), c.parseErrors...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required for the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be '%s' or '%s'", c.DatabaseDriver, DriverPostgres, DriverSQLite))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if c.IsProduction() && c.UsingDevSecret() {
		problems = append(problems, "JWT_SECRET must be set explicitly in production")
	}

	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid TOKEN_TTL %v: must be positive", c.TokenTTL))
	}

	if c.LoginMaxAttempts < 0 {
		problems = append(problems, fmt.Sprintf("invalid LOGIN_MAX_ATTEMPTS %d: must not be negative", c.LoginMaxAttempts))
	}
	if c.LoginMaxAttempts > 0 && c.LoginLockout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid LOGIN_LOCKOUT %v: must be positive", c.LoginLockout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func buildDatabaseURL(user, password, host, port, name string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(bad *[]string, key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		*bad = append(*bad, fmt.Sprintf("invalid %s '%s': must be an integer", key, value))
		return fallback
	}
	return i
}

func getEnvBool(bad *[]string, key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*bad = append(*bad, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return fallback
	}
	return b
}

func getEnvDuration(bad *[]string, key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*bad = append(*bad, fmt.Sprintf("invalid %s '%s': must be a duration such as 15m or 168h", key, value))
		return fallback
	}
	return d
}
