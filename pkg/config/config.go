package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultEnvFile = "config.env"

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Classifier ClassifierConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Ledger     LedgerConfig
	LogDir     string
}

type ServerConfig struct {
	Addr string
}

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type ClassifierConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// RedisConfig is optional: an empty Addr keeps the category cache in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type CacheConfig struct {
	SkipDegraded bool
}

type LedgerConfig struct {
	DefaultCurrency string
	CurrencyPolicy  string
}

// Load reads config.env (when present) into the environment and builds the
// full configuration from it. Variables already set in the environment win.
func Load() (*Config, error) {
	return LoadFrom(defaultEnvFile)
}

func LoadFrom(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	db, err := LoadConfigDB()
	if err != nil {
		return nil, err
	}

	classifier, err := LoadConfigClassifier()
	if err != nil {
		return nil, err
	}

	redis, err := LoadConfigRedis()
	if err != nil {
		return nil, err
	}

	skipDegraded, err := getEnvBool("CATEGORY_CACHE_SKIP_DEGRADED", false)
	if err != nil {
		return nil, err
	}

	ledger := LedgerConfig{
		DefaultCurrency: getEnv("LEDGER_DEFAULT_CURRENCY", "ZAR"),
		CurrencyPolicy:  getEnv("LEDGER_CURRENCY_POLICY", "default"),
	}

	return &Config{
		Server:     ServerConfig{Addr: getEnv("HTTP_ADDR", ":8080")},
		DB:         *db,
		Classifier: *classifier,
		Redis:      *redis,
		Cache:      CacheConfig{SkipDegraded: skipDegraded},
		Ledger:     ledger,
		LogDir:     getEnv("LOG_DIR", "logs"),
	}, nil
}

func LoadConfigDB() (*DBConfig, error) {
	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	maxOpen, err := getEnvInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}

	maxIdle, err := getEnvInt("DB_MAX_IDLE_CONNS", 25)
	if err != nil {
		return nil, err
	}

	return &DBConfig{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         port,
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns: maxOpen,
		MaxIdleConns: maxIdle,
	}, nil
}

func LoadConfigClassifier() (*ClassifierConfig, error) {
	url := os.Getenv("CLASSIFIER_URL")
	if url == "" {
		return nil, errors.New("CLASSIFIER_URL is required")
	}

	timeout, err := getEnvDuration("CLASSIFIER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &ClassifierConfig{
		URL:     url,
		APIKey:  os.Getenv("CLASSIFIER_API_KEY"),
		Timeout: timeout,
	}, nil
}

func LoadConfigRedis() (*RedisConfig, error) {
	db, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	return &RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
