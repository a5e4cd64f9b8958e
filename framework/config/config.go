package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the typed application configuration filled from the environment.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Auth     AuthConfig
	Log      LogConfig
	Activity ActivityConfig

	// RulesFile is an optional YAML file overriding the validation rules.
	RulesFile string
}

type AppConfig struct {
	Name string
	Env  string // local | production | testing
	Port string
}

type DBConfig struct {
	Path string // sqlite file, ":memory:" for a throwaway store
}

type AuthConfig struct {
	BcryptCost int
}

type LogConfig struct {
	Level  string // zerolog level name
	Format string // console | json
}

type ActivityConfig struct {
	URL     string // wearables API base, empty disables fetching
	Timeout time.Duration
	Refresh time.Duration // placeholder refresh interval, 0 disables
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name: env("APP_NAME", "Nutrition"),
			Env:  env("APP_ENV", "local"),
			Port: env("APP_PORT", "8000"),
		},
		DB: DBConfig{
			Path: env("DB_PATH", "nutrition.db"),
		},
		Auth: AuthConfig{
			BcryptCost: GetInt("BCRYPT_COST", 10),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "console"),
		},
		Activity: ActivityConfig{
			URL:     env("ACTIVITY_URL", ""),
			Timeout: GetDuration("ACTIVITY_TIMEOUT", 5*time.Second),
			Refresh: GetDuration("ACTIVITY_REFRESH", 30*time.Second),
		},
		RulesFile: env("RULES_FILE", ""),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetDuration parses a time.ParseDuration value ("5s", "1m30s").
func GetDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
