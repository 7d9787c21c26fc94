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

// Config holds application configuration loaded from environment.
type Config struct {
	Server     ServerConfig
	Airtable   AirtableConfig
	Cloudinary CloudinaryConfig
	AWS        AWSConfig
	Email      EmailConfig
	Auth       AuthConfig
	CSRF       CSRFConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Env                string // development | production
	Port               string
	BaseURL            string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
	// TrustedProxies are the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies []string
}

// IsProduction reports whether cookies should be marked Secure.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

// AirtableConfig holds record store credentials and table names.
type AirtableConfig struct {
	APIKey               string
	BaseID               string
	StudentsTable        string
	RegistrationTable    string
	BookingsTable        string
	RoomsTable           string
	BookingTypesTable    string
	TemplateEmailTable   string
	RequestTimeoutSecond int
}

// RequestTimeout returns the per-request timeout of the record store client.
func (a AirtableConfig) RequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeoutSecond) * time.Second
}

// Configured reports whether the record store can be reached at all.
func (a AirtableConfig) Configured() bool {
	return a.APIKey != "" && a.BaseID != ""
}

// CloudinaryConfig holds media store credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Configured reports whether all three credentials are set.
func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// AWSConfig holds AWS credentials for the secondary slip store.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SlipsBucket     string
	PublicBaseURL   string // optional CDN / bucket website prefix for object URLs
}

// EmailConfig selects and configures the mail relay.
type EmailConfig struct {
	Provider     string // smtp | resend | noop
	FromName     string
	FromAddress  string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string // Gmail app password
	ResendAPIKey string
}

// AuthConfig holds the single staff credential and session settings.
type AuthConfig struct {
	Username      string
	Password      string // plain; ignored when PasswordHash is set
	PasswordHash  string // bcrypt
	SessionSecret string
	SessionHours  int
	CookieName    string
}

// CSRFConfig holds the gorilla/csrf key and trusted origins.
type CSRFConfig struct {
	Key            string // 32 bytes
	TrustedOrigins []string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig throttles login attempts per client IP.
type RateLimitConfig struct {
	LoginAttempts int
	WindowSeconds int
}

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()             // .env
	_ = godotenv.Load(".env.local") // local overrides

	cfg := &Config{
		Server: ServerConfig{
			Env:                getEnv("APP_ENV", "development"),
			Port:               getEnv("PORT", "8080"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 60),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080"),
			TrustedProxies:     splitTrim(getEnv("TRUSTED_PROXIES", ""), ","),
		},
		Airtable: AirtableConfig{
			APIKey:               getEnv("AIRTABLE_API_KEY", ""),
			BaseID:               getEnv("AIRTABLE_BASE_ID", ""),
			StudentsTable:        getEnv("AIRTABLE_TABLE_NAME", "Students"),
			RegistrationTable:    getEnv("AIRTABLE_REGISTRATION_TABLE", "Registration"),
			BookingsTable:        getEnv("AIRTABLE_BOOKINGS_TABLE", "Bookings"),
			RoomsTable:           getEnv("AIRTABLE_ROOMS_TABLE", "Rooms"),
			BookingTypesTable:    getEnv("AIRTABLE_BOOKING_TYPES_TABLE", "Booking Types"),
			TemplateEmailTable:   getEnv("AIRTABLE_TEMPLATE_TABLE", "TemplateEmail"),
			RequestTimeoutSecond: getEnvInt("AIRTABLE_TIMEOUT_SEC", 30),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-southeast-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			SlipsBucket:     getEnv("AWS_S3_SLIPS_BUCKET", ""),
			PublicBaseURL:   getEnv("AWS_S3_PUBLIC_BASE_URL", ""),
		},
		Email: EmailConfig{
			Provider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "smtp")),
			FromName:     getEnv("EMAIL_FROM_NAME", "Limitless Club"),
			FromAddress:  getEnv("EMAIL_FROM_ADDRESS", getEnv("GMAIL_USER", "")),
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnvInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("GMAIL_USER", ""),
			SMTPPass:     getEnv("GMAIL_APP_PASSWORD", ""),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		Auth: AuthConfig{
			Username:      getEnv("AUTH_USERNAME", "admin"),
			Password:      getEnv("AUTH_PASSWORD", ""),
			PasswordHash:  getEnv("AUTH_PASSWORD_HASH", ""),
			SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production"),
			SessionHours:  getEnvInt("SESSION_HOURS", 24),
			CookieName:    getEnv("SESSION_COOKIE_NAME", "lc_session"),
		},
		CSRF: CSRFConfig{
			Key:            getEnv("CSRF_KEY", ""),
			TrustedOrigins: splitTrim(getEnv("CSRF_TRUSTED_ORIGINS", "localhost:8080"), ","),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			LoginAttempts: getEnvInt("LOGIN_RATE_LIMIT", 10),
			WindowSeconds: getEnvInt("LOGIN_RATE_WINDOW_SEC", 300),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that make the service unusable. Missing
// provider credentials are not fatal: the affected actions report an
// upstream failure instead.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Airtable.RequestTimeoutSecond <= 0 {
		errs = append(errs, errors.New("AIRTABLE_TIMEOUT_SEC must be positive"))
	}
	switch c.Email.Provider {
	case "smtp", "resend", "noop":
	default:
		errs = append(errs, fmt.Errorf("EMAIL_PROVIDER %q is not one of smtp, resend, noop", c.Email.Provider))
	}
	if c.CSRF.Key != "" && len(c.CSRF.Key) != 32 {
		errs = append(errs, errors.New("CSRF_KEY must be exactly 32 bytes"))
	}
	if c.Server.IsProduction() {
		if c.Auth.SessionSecret == "change-me-in-production" {
			errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
		}
		if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
			errs = append(errs, errors.New("AUTH_PASSWORD or AUTH_PASSWORD_HASH is required in production"))
		}
	}
	return errors.Join(errs...)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
