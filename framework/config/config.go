package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-beans/framework/validation"
)

// Config is the central typed configuration struct.
type Config struct {
	App   AppConfig
	Beans BeansConfig
	Log   LogConfig
	Admin AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

// BeansConfig points at the definition file the context starts from.
type BeansConfig struct {
	Definitions string
	Format      string // yaml | toml | xml, empty infers from extension
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

type AdminConfig struct {
	Addr string
}

var rules = validation.Rules{
	"app_env":      "required|in:local,production,testing",
	"beans_format": "sometimes|in:yaml,yml,toml,xml",
	"log_level":    "sometimes|in:debug,info,warn,warning,error",
	"log_format":   "sometimes|in:console,json",
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
//
// LOG_LEVEL defaults to debug when APP_DEBUG is true and to info otherwise.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	debug := envBool("APP_DEBUG", false)
	level := "info"
	if debug {
		level = "debug"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "go-beans"),
			Env:   env("APP_ENV", "local"),
			Debug: debug,
		},
		Beans: BeansConfig{
			Definitions: env("BEANS_DEFINITIONS", "beans.yaml"),
			Format:      env("BEANS_FORMAT", ""),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", level),
			Format: env("LOG_FORMAT", "console"),
		},
		Admin: AdminConfig{
			Addr: env("ADMIN_ADDR", ":8000"),
		},
	}
}

// Validate checks the enumerated settings and reports every bad one.
func (c *Config) Validate() error {
	v := validation.Make(map[string]string{
		"app_env":      c.App.Env,
		"beans_format": c.Beans.Format,
		"log_level":    c.Log.Level,
		"log_format":   c.Log.Format,
	}, rules)
	if err := v.Err(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
