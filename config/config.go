package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// Email provider identifiers accepted by EMAIL_PROVIDER and EMAIL_FALLBACK_PROVIDERS.
const (
	ProviderGmail     = "gmail"
	ProviderBrevoSMTP = "brevo-smtp"
	ProviderBrevoAPI  = "brevo-api"
	ProviderBridge    = "bridge"
)

// EmailConfig carries every transport credential. Any provider whose
// credentials are empty is skipped at startup.
type EmailConfig struct {
	Provider          string
	FallbackProviders []string

	User string
	Pass string

	BrevoAPIKey   string
	BrevoSMTPUser string
	BrevoSMTPPass string

	BridgeURL    string
	BridgeSecret string

	FromName    string
	FromAddress string
	LogoPath    string
	SendTimeout time.Duration
}

type Config struct {
	Port     string
	Env      string
	LogLevel string

	MongoURI string
	DBName   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	AllowedOrigins []string

	SuperAdminEmail string
	SuperAdminPass  string

	Email EmailConfig
}

var defaultDevOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:3001",
}

var defaultProdOrigins = []string{
	"https://www.jvoverseas.com",
	"https://jvoverseas.com",
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("Warning: .env file not found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	cfg := &Config{
		Port:     getEnv("PORT", "5000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI: firstEnv("MONGO_URI", "MONGODB_URI"),
		DBName:   getEnv("DB_NAME", "jvoverseas"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SuperAdminEmail: getEnv("SUPER_ADMIN_EMAIL", "admin@example.com"),
		SuperAdminPass:  getEnv("SUPER_ADMIN_PASS", "admin123"),
	}

	cfg.Env = firstEnv("NODE_ENV", "APP_ENV")
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))
	if len(cfg.AllowedOrigins) == 0 {
		if cfg.IsDevelopment() {
			cfg.AllowedOrigins = defaultDevOrigins
		} else {
			cfg.AllowedOrigins = defaultProdOrigins
		}
	}

	cfg.Email = EmailConfig{
		Provider:          strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderGmail)),
		FallbackProviders: splitList(strings.ToLower(os.Getenv("EMAIL_FALLBACK_PROVIDERS"))),
		User:              os.Getenv("EMAIL_USER"),
		Pass:              os.Getenv("EMAIL_PASS"),
		BrevoAPIKey:       os.Getenv("BREVO_API_KEY"),
		BrevoSMTPUser:     os.Getenv("BREVO_SMTP_USER"),
		BrevoSMTPPass:     os.Getenv("BREVO_SMTP_PASS"),
		BridgeURL:         os.Getenv("EMAIL_BRIDGE_URL"),
		BridgeSecret:      os.Getenv("EMAIL_BRIDGE_SECRET"),
		FromName:          getEnv("EMAIL_FROM_NAME", "JV Overseas"),
		FromAddress:       getEnv("EMAIL_FROM_ADDRESS", "jvoverseaspvtltd@gmail.com"),
		LogoPath:          getEnv("EMAIL_LOGO_PATH", "assets/logo.png"),
		SendTimeout:       getEnvDuration("EMAIL_SEND_TIMEOUT", 30*time.Second),
	}

	if cfg.MongoURI == "" {
		log.Warn("Warning: MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		log.Warn("Warning: JWT_SECRET is not set")
	}

	return cfg
}

// IsDevelopment reports whether internal error detail may be exposed.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsProduction gates development conveniences such as logging login OTPs.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LogLvl maps LOG_LEVEL onto the gommon levels.
func (c *Config) LogLvl() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// bare number of seconds
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
