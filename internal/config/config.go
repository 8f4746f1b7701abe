package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PKWT_"

// legacyEnv maps the un-prefixed variables of older deployments onto config keys.
var legacyEnv = map[string]string{
	"DATABASE_URL":     "database.url",
	"RABBITMQ_URL":     "rabbitmq.url",
	"MAIL_HOST":        "smtp.host",
	"MAIL_USER":        "smtp.user",
	"MAIL_PASS":        "smtp.password",
	"SENDGRID_API_KEY": "sendgrid.api_key",
	"CRON_SECRET":      "cron.secret",
	"PORT":             "http.port",
}

type Config struct {
	Env       string          `koanf:"env"`
	HTTP      HTTPConfig      `koanf:"http"`
	Database  DatabaseConfig  `koanf:"database"`
	RabbitMQ  RabbitMQConfig  `koanf:"rabbitmq"`
	Mail      MailConfig      `koanf:"mail"`
	SMTP      SMTPConfig      `koanf:"smtp"`
	SendGrid  SendGridConfig  `koanf:"sendgrid"`
	App       AppConfig       `koanf:"app"`
	Cron      CronConfig      `koanf:"cron"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Auth      AuthConfig      `koanf:"auth"`
	Rollbar   RollbarConfig   `koanf:"rollbar"`
	Cache     CacheConfig     `koanf:"cache"`
}

type HTTPConfig struct {
	Port           string `koanf:"port"`
	AllowedOrigins string `koanf:"allowed_origins"` // comma separated
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type RabbitMQConfig struct {
	URL string `koanf:"url"`
}

type MailConfig struct {
	Provider     string `koanf:"provider"` // smtp | sendgrid
	From         string `koanf:"from"`
	FromName     string `koanf:"from_name"`
	HRRecipients string `koanf:"hr_recipients"` // comma separated
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

type SendGridConfig struct {
	APIKey string `koanf:"api_key"`
}

type AppConfig struct {
	DashboardURL string `koanf:"dashboard_url"`
	Timezone     string `koanf:"timezone"`
}

type CronConfig struct {
	Secret string `koanf:"secret"`
}

type SchedulerConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Mode     string        `koanf:"mode"`
}

type AuthConfig struct {
	JWTSecret   string        `koanf:"jwt_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	LoginLimit  int           `koanf:"login_limit"`
	LoginWindow time.Duration `koanf:"login_window"`
}

type RollbarConfig struct {
	Token string `koanf:"token"`
}

type CacheConfig struct {
	FeedTTL time.Duration `koanf:"feed_ttl"`
}

// Load layers defaults, the optional YAML file, PKWT_* variables and the legacy variables,
// later sources winning.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	for name, key := range legacyEnv {
		v := os.Getenv(name)
		if v == "" || os.Getenv(prefixedName(key)) != "" {
			continue
		}
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// envKey turns PKWT_SMTP_HOST into smtp.host. The first underscore separates the section.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func prefixedName(key string) string {
	return envPrefix + strings.ToUpper(strings.Replace(key, ".", "_", 1))
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		// WIB, for hosts without tzdata
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func (c *Config) HRRecipients() []string {
	return splitList(c.Mail.HRRecipients)
}

func (c *Config) AllowedOrigins() []string {
	return splitList(c.HTTP.AllowedOrigins)
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is required (set DATABASE_URL or PKWT_DATABASE_URL)")
	}
	switch c.Mail.Provider {
	case "smtp":
		if c.SMTP.Host == "" {
			return errors.New("smtp host is required when mail.provider is smtp")
		}
		if c.Mail.From == "" && c.SMTP.User == "" {
			return errors.New("mail.from or smtp.user is required when mail.provider is smtp")
		}
	case "sendgrid":
		if c.SendGrid.APIKey == "" {
			return errors.New("sendgrid api key is required when mail.provider is sendgrid")
		}
		if c.Mail.From == "" {
			return errors.New("mail.from is required when mail.provider is sendgrid")
		}
	default:
		return fmt.Errorf("unknown mail provider: %s (supported: smtp, sendgrid)", c.Mail.Provider)
	}
	if c.IsProduction() {
		if c.Cron.Secret == "" {
			return errors.New("cron secret is required in production")
		}
		if c.Auth.JWTSecret == "" {
			return errors.New("jwt secret is required in production")
		}
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		return errors.New("scheduler interval must be positive")
	}
	if c.Scheduler.Mode != "hr" && c.Scheduler.Mode != "unit" {
		return fmt.Errorf("unknown scheduler mode: %s (supported: hr, unit)", c.Scheduler.Mode)
	}
	return nil
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
