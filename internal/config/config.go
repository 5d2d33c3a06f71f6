package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"API_PORT" envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string   `env:"LOG_FILE"`
	LogRequests    bool     `env:"LOG_REQUESTS" envDefault:"false"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Client identification
	SiteDomain  string `env:"SITE_DOMAIN" envDefault:"northwind.digital"`
	CDNIPHeader string `env:"CDN_IP_HEADER" envDefault:"CF-Connecting-IP"`

	// Anti-abuse Configuration
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	GlobalRateRPS   float64       `env:"GLOBAL_RATE_RPS" envDefault:"10"`
	GlobalRateBurst int           `env:"GLOBAL_RATE_BURST" envDefault:"20"`
	MinSubmitDelay  time.Duration `env:"MIN_SUBMIT_DELAY" envDefault:"3s"`
	SpamRulesFile   string        `env:"SPAM_RULES_FILE"`

	// Redis Configuration, empty keeps rate limit state in process memory
	RedisURL string `env:"REDIS_URL"`

	// Mail Configuration
	Mail MailConfig

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"contactform"`
}

// Supported mail providers
const (
	MailProviderResend = "resend"
	MailProviderSMTP   = "smtp"
)

// MailConfig selects and configures the outbound mail provider
type MailConfig struct {
	Provider string        `env:"MAIL_PROVIDER" envDefault:"resend"`
	APIKey   string        `env:"MAIL_API_KEY"`
	APIURL   string        `env:"MAIL_API_URL" envDefault:"https://api.resend.com/emails"`
	From     string        `env:"MAIL_FROM" envDefault:"Contact Form <noreply@northwind.digital>"`
	To       string        `env:"CONTACT_TO_EMAIL" envDefault:"hello@northwind.digital"`
	Timeout  time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPSSL  bool   `env:"SMTP_SSL" envDefault:"false"`
}

// IsProduction reports whether the service runs with production defaults
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{
		"internal/config/env/.env.development",
		".env",
	}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf("internal/config/env/.env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.SiteDomain = strings.TrimPrefix(strings.TrimPrefix(cfg.SiteDomain, "https://"), "http://")
	cfg.SiteDomain = strings.TrimPrefix(cfg.SiteDomain, "www.")
	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}
	if cfg.IsProduction() && len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS must be set in production")
	}
	switch cfg.Mail.Provider {
	case MailProviderResend, MailProviderSMTP:
	default:
		return nil, fmt.Errorf("MAIL_PROVIDER must be resend or smtp, got %q", cfg.Mail.Provider)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}
