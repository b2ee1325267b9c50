package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string `env:"APP_ENV" env-default:"development"`
	Port   string `env:"PORT" env-default:"8080"`
	DBURL  string `env:"DB_URL" env-required:"true"`

	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
	JWTExpire string `env:"JWT_EXPIRE" env-default:"7d"`

	SiteName   string `env:"SITE_NAME" env-default:"Art Market"`
	BaseURL    string `env:"BASE_URL" env-default:"http://localhost:3000"`
	CORSOrigin string `env:"CORS_ORIGIN" env-default:"http://localhost:3000"`

	ClientEmail         string `env:"CLIENT_EMAIL"`
	ClientEmailPassword string `env:"CLIENT_EMAIL_PASSWORD"`
	SMTPHost            string `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	SMTPPort            int    `env:"SMTP_PORT" env-default:"587"`

	GoogleClientID         string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret     string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL      string `env:"GOOGLE_CALLBACK_URL"`
	GoogleFrontendRedirect string `env:"GOOGLE_FRONTEND_REDIRECT"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaPricingTopic string   `env:"KAFKA_PRICING_TOPIC" env-default:"artwork-pricing"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	StripeCurrency      string `env:"STRIPE_CURRENCY" env-default:"usd"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// C is populated by LoadEnv.
var C *Config

func LoadEnv() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if _, err := ParseExpire(cfg.JWTExpire); err != nil {
		log.Fatalf("Invalid JWT_EXPIRE: %v", err)
	}

	C = &cfg
	return C
}

// JWTTTL returns the token lifetime. LoadEnv has already validated the value.
func (c *Config) JWTTTL() time.Duration {
	d, err := ParseExpire(c.JWTExpire)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

func (c *Config) MailEnabled() bool {
	return c.ClientEmail != "" && c.ClientEmailPassword != ""
}

func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleCallbackURL != ""
}

func (c *Config) StripeEnabled() bool {
	return c.StripeSecretKey != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ParseExpire accepts Go durations ("36h") as well as the day/week shorthand
// used by the frontend tooling ("7d", "2w").
func ParseExpire(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty duration")
	}

	unit := v[len(v)-1]
	if unit == 'd' || unit == 'w' {
		n, err := strconv.Atoi(v[:len(v)-1])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", v)
		}
		day := 24 * time.Hour
		if unit == 'w' {
			return time.Duration(n) * 7 * day, nil
		}
		return time.Duration(n) * day, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", v)
	}
	return d, nil
}
