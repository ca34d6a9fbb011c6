package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (PARFUM_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL; empty serves the embedded catalog" flag:"database-url"`
	SessionDir  string `default:"data/sessions" usage:"Directory for persisted session state" flag:"session-dir"`

	SessionIdleTTL time.Duration `default:"30m" usage:"Idle time before in-memory session and checkout state is evicted" flag:"session-idle-ttl"`

	JWTSecret    string `usage:"HMAC secret for bearer tokens (PARFUM_JWT_SECRET)" flag:"jwt-secret"`
	AuthEmail    string `usage:"Email accepted by the credentialed token endpoint" flag:"auth-email"`
	AuthPassword string `usage:"Password for the credentialed token endpoint; empty allows guest tokens" flag:"auth-password"`

	GeminiAPIKey    string `usage:"Upstream generative API key (PARFUM_GEMINI_API_KEY)" flag:"gemini-api-key"`
	ChatModel       string `default:"" usage:"Upstream model override" flag:"chat-model"`
	ChatRequireAuth bool   `default:"false" usage:"Require a bearer token on the chat endpoint" flag:"chat-require-auth"`

	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// RateLimitConfig controls the per-client token bucket rate limiter.
type RateLimitConfig struct {
	RPS   float64 `default:"20" usage:"Sustained requests per second per client"`
	Burst int     `default:"40" usage:"Burst size per client"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PARFUM",
		Files:     []string{"config.yaml", "/etc/parfum/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and
// PORT to the application's PARFUM_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if c.GeminiAPIKey == "" {
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			c.GeminiAPIKey = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
