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

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Media     MediaConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig
	Scheduler SchedulerConfig
	Company   CompanyConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BodyLimit   int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type MediaConfig struct {
	Dir     string
	BaseURL string
}

// SMTPConfig disables outbound email when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type RateLimitConfig struct {
	AuthPerMinute  int
	ApplyPerMinute int
}

type SchedulerConfig struct {
	DeadlineSweepSpec string
}

type CompanyConfig struct {
	Name         string
	Description  string
	Email        string
	Phone        string
	Address      string
	LogoURL      string
	BannerURL    string
	FacebookURL  string
	LinkedInURL  string
	TwitterURL   string
	InstagramURL string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment, after merging a .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	opt := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	req := func(key string) string {
		v := opt(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	def := func(key, fallback string) string {
		if v := opt(key); v != "" {
			return v
		}
		return fallback
	}
	num := func(key string, fallback int) int {
		raw := opt(key)
		if raw == "" {
			return fallback
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return fallback
		}
		return v
	}
	dur := func(key string, fallback time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return fallback
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		BodyLimit:   num("HTTP_BODY_LIMIT", 10*1024*1024),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                def("DB_HOST", "localhost"),
		DBPort:                def("DB_PORT", "5432"),
		DBName:                def("DB_NAME", "recruitment"),
		DBUser:                def("DB_USER", "postgres"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             def("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_MAX_CONNS", 10)),
		PoolMinConns:          int32(num("DB_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   dur("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: dur("DB_HEALTH_CHECK_PERIOD", 30*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     def("REDIS_HOST", "localhost"),
		Port:     def("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      time.Duration(num("REDIS_TTL", 600)) * time.Second,
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Media = MediaConfig{
		Dir:     def("MEDIA_DIR", "./media"),
		BaseURL: strings.TrimRight(def("MEDIA_BASE_URL", "/media"), "/"),
	}

	cfg.SMTP = SMTPConfig{
		Host:     opt("SMTP_HOST"),
		Port:     def("SMTP_PORT", "587"),
		User:     opt("SMTP_USER"),
		Password: opt("SMTP_PASSWORD"),
		From:     opt("SMTP_FROM"),
	}

	cfg.RateLimit = RateLimitConfig{
		AuthPerMinute:  num("AUTH_RATE_LIMIT", 10),
		ApplyPerMinute: num("APPLY_RATE_LIMIT", 3),
	}

	cfg.Scheduler = SchedulerConfig{
		DeadlineSweepSpec: def("DEADLINE_SWEEP_CRON", "@every 1h"),
	}

	cfg.Company = CompanyConfig{
		Name:         def("COMPANY_NAME", cfg.App.AppName),
		Description:  opt("COMPANY_DESCRIPTION"),
		Email:        opt("COMPANY_EMAIL"),
		Phone:        opt("COMPANY_PHONE"),
		Address:      opt("COMPANY_ADDRESS"),
		LogoURL:      opt("COMPANY_LOGO_URL"),
		BannerURL:    opt("COMPANY_BANNER_URL"),
		FacebookURL:  opt("COMPANY_FACEBOOK_URL"),
		LinkedInURL:  opt("COMPANY_LINKEDIN_URL"),
		TwitterURL:   opt("COMPANY_TWITTER_URL"),
		InstagramURL: opt("COMPANY_INSTAGRAM_URL"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
