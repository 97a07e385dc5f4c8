package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultOutboundTimeout bounds every call to reCAPTCHA and Telegram
	DefaultOutboundTimeout = 5 * time.Second
)

type Config struct {
	ServerPort     string
	Environment    string
	AppURL         string
	AllowedOrigins []string
	// Label printed on the first line of every chat notification
	SiteLabel string
	// Telegram Bot API
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string
	// Google reCAPTCHA v3
	RecaptchaSiteKey   string
	RecaptchaSecretKey string
	RecaptchaVerifyURL string
	OutboundTimeout    time.Duration
	// Email (Resend), used for security alerts only
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	AlertEmail    string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		AppURL:             getEnv("APP_URL", "http://localhost:8080"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		SiteLabel:          getEnv("SITE_LABEL", "barbarisstudio.vercel"),
		TelegramBotToken:   getSecret("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL:     getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		RecaptchaSiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
		RecaptchaSecretKey: getSecret("RECAPTCHA_SECRET_KEY"),
		RecaptchaVerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		OutboundTimeout:    getEnvDuration("OUTBOUND_TIMEOUT", DefaultOutboundTimeout),
		ResendAPIKey:       getSecret("RESEND_API_KEY"),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@barbarisstudio.ru"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "BarbarisStudio"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AlertEmail:         getEnv("ALERT_EMAIL", ""),
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MissingRelaySettings lists the environment keys the lead relay cannot work without
func (c *Config) MissingRelaySettings() []string {
	var missing []string
	if c.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if c.RecaptchaSecretKey == "" {
		missing = append(missing, "RECAPTCHA_SECRET_KEY")
	}
	return missing
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// getSecret reads a value that must never reach the logs
func getSecret(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("[WARNING] %s is not set", key)
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
