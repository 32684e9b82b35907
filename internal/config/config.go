package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envServerAddress   = "SERVER_ADDRESS"
	envBaseURL         = "BASE_URL"
	envDatabaseDSN     = "DATABASE_DSN"
	envFileStoragePath = "FILE_STORAGE_PATH"
	envRedisAddr       = "REDIS_ADDR"
	envCacheTTL        = "CACHE_TTL"
	envJWTSecretKey    = "JWT_SECRET_KEY"
	envJWTAccessExpire = "JWT_ACCESS_EXPIRE"
	envTimezone        = "TIMEZONE"
	envDashboardWindow = "DASHBOARD_WINDOW"
	envDashboardLimit  = "DASHBOARD_LIMIT"
	envCodeLength      = "CODE_LENGTH"
	envRateLimit       = "RATE_LIMIT"
	envLogLevel        = "LOG_LEVEL"
	envRecordTimeout   = "RECORD_TIMEOUT"
)

const (
	defaultEnvFile         = ".env"
	defaultServerAddress   = "localhost:8080"
	defaultBaseURL         = "http://localhost:8080"
	defaultCacheTTL        = time.Hour
	defaultJWTAccessExpire = 24 * time.Hour * 30
	defaultTimezone        = "Local"
	defaultDashboardWindow = 7 * 24 * time.Hour
	defaultDashboardLimit  = 500
	defaultCodeLength      = 6
	defaultRateLimit       = 60
	defaultLogLevel        = "info"
	defaultRecordTimeout   = 5 * time.Second

	minJWTSecretBytes = 32
	maxCodeLength     = 16
)

type Config struct {
	ServerAddress   string
	BaseURL         string
	DatabaseDSN     string // пустой DSN = хранилище в памяти
	FileStoragePath string // снимок хранилища в памяти, пустой путь = без файла
	RedisAddr       string // пустой адрес = без кеша
	CacheTTL        time.Duration
	JWTSecretKey    string // Минимум 32 байта для HS256
	JWTAccessExpire time.Duration
	Timezone        string
	Location        *time.Location
	DashboardWindow time.Duration
	DashboardLimit  int
	CodeLength      int
	RateLimit       int // запросов в минуту с одного IP на создание ссылок
	LogLevel        string
	RecordTimeout   time.Duration

	// GeneratedSecret выставляется, когда ключ JWT не задан и сгенерирован на старте
	GeneratedSecret bool
}

// NewConfig собирает конфигурацию: значения по умолчанию, затем флаги,
// затем переменные окружения (в том числе из .env).
func NewConfig(args []string) (*Config, error) {
	cfg := &Config{
		ServerAddress:   defaultServerAddress,
		BaseURL:         defaultBaseURL,
		CacheTTL:        defaultCacheTTL,
		JWTAccessExpire: defaultJWTAccessExpire,
		Timezone:        defaultTimezone,
		DashboardWindow: defaultDashboardWindow,
		DashboardLimit:  defaultDashboardLimit,
		CodeLength:      defaultCodeLength,
		RateLimit:       defaultRateLimit,
		LogLevel:        defaultLogLevel,
		RecordTimeout:   defaultRecordTimeout,
	}

	envFile := defaultEnvFile

	flags := flag.NewFlagSet("nexuslink", flag.ContinueOnError)
	flags.StringVar(&envFile, "env-file", envFile, "Path to .env file")
	flags.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Server address")
	flags.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Base URL for short links")
	flags.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "Database DSN")
	flags.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "File storage path")
	flags.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for the resolve cache")
	flags.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Resolve cache TTL")
	flags.DurationVar(&cfg.JWTAccessExpire, "jwt-access-expire", cfg.JWTAccessExpire, "JWT access token expiration")
	flags.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "Timezone for hourly buckets")
	flags.DurationVar(&cfg.DashboardWindow, "dashboard-window", cfg.DashboardWindow, "Dashboard event window")
	flags.IntVar(&cfg.DashboardLimit, "dashboard-limit", cfg.DashboardLimit, "Dashboard event row limit")
	flags.IntVar(&cfg.CodeLength, "code-length", cfg.CodeLength, "Short code length")
	flags.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Shorten requests per minute per IP")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flags.DurationVar(&cfg.RecordTimeout, "record-timeout", cfg.RecordTimeout, "Click recording timeout")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// .env не перекрывает уже выставленные переменные окружения
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg.applyEnv(envServerAddress, &cfg.ServerAddress)
	cfg.applyEnv(envBaseURL, &cfg.BaseURL)
	cfg.applyEnv(envDatabaseDSN, &cfg.DatabaseDSN)
	cfg.applyEnv(envFileStoragePath, &cfg.FileStoragePath)
	cfg.applyEnv(envRedisAddr, &cfg.RedisAddr)
	cfg.applyEnv(envJWTSecretKey, &cfg.JWTSecretKey)
	cfg.applyEnv(envTimezone, &cfg.Timezone)
	cfg.applyEnv(envLogLevel, &cfg.LogLevel)

	errs := []error{
		cfg.applyEnvDuration(envCacheTTL, &cfg.CacheTTL),
		cfg.applyEnvDuration(envJWTAccessExpire, &cfg.JWTAccessExpire),
		cfg.applyEnvDuration(envDashboardWindow, &cfg.DashboardWindow),
		cfg.applyEnvDuration(envRecordTimeout, &cfg.RecordTimeout),
		cfg.applyEnvInt(envDashboardLimit, &cfg.DashboardLimit),
		cfg.applyEnvInt(envCodeLength, &cfg.CodeLength),
		cfg.applyEnvInt(envRateLimit, &cfg.RateLimit),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.validateJWTSecret(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.normalizeServerAddress()

	return cfg, nil
}

func (c *Config) applyEnv(key string, target *string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}

func (c *Config) applyEnvDuration(key string, target *time.Duration) error {
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = d
	return nil
}

func (c *Config) applyEnvInt(key string, target *int) error {
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = n
	return nil
}

func (c *Config) validate() error {
	if c.CodeLength <= 0 || c.CodeLength > maxCodeLength {
		return fmt.Errorf("code length must be in 1..%d, got %d", maxCodeLength, c.CodeLength)
	}
	if c.DashboardLimit <= 0 {
		return fmt.Errorf("dashboard limit must be positive, got %d", c.DashboardLimit)
	}
	if c.DashboardWindow <= 0 {
		return fmt.Errorf("dashboard window must be positive, got %s", c.DashboardWindow)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit)
	}
	return nil
}

func (c *Config) validateJWTSecret() error {
	if c.JWTSecretKey == "" {
		// Для разработки генерируем случайный ключ
		key := make([]byte, minJWTSecretBytes)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate JWT secret key: %w", err)
		}
		c.JWTSecretKey = base64.StdEncoding.EncodeToString(key)
		c.GeneratedSecret = true
		return nil
	}

	decoded, err := base64.StdEncoding.DecodeString(c.JWTSecretKey)
	if err != nil || len(decoded) < minJWTSecretBytes {
		return fmt.Errorf("JWT secret key must be base64 encoded and at least %d bytes long", minJWTSecretBytes)
	}
	return nil
}

func (c *Config) normalizeServerAddress() {
	if strings.HasPrefix(c.ServerAddress, ":") {
		c.ServerAddress = "localhost" + c.ServerAddress
	}
}
