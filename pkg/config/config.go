package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	GRPCPort int `yaml:"grpc_port"`
	HTTPPort int `yaml:"http_port"`

	Database Database `yaml:"database"`
	Cache    Cache    `yaml:"cache"`
	Kafka    Kafka    `yaml:"kafka"`
	Telegram Telegram `yaml:"telegram"`
	Relay    Relay    `yaml:"relay"`

	AdminToken         string        `yaml:"admin_token"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	SuccessDelay       time.Duration `yaml:"checkout_success_delay"`
}

type Database struct {
	// memory, postgres or sqlite
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type Cache struct {
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

type Kafka struct {
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

type Telegram struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	APIURL   string `yaml:"api_url"`
}

type Relay struct {
	URL      string        `yaml:"url"`
	GRPCAddr string        `yaml:"grpc_addr"`
	Timeout  time.Duration `yaml:"timeout"`
}

func defaults() Config {
	return Config{
		AppEnv:   "dev",
		LogLevel: "info",
		HTTPPort: 8080,
		GRPCPort: 8081,
		Database: Database{Driver: "memory"},
		Cache:    Cache{TTL: 5 * time.Minute},
		Kafka:    Kafka{Topic: "storefront.orders"},
		Telegram: Telegram{APIURL: "https://api.telegram.org"},
		Relay: Relay{
			URL:     "http://localhost:3001/send-order",
			Timeout: 10 * time.Second,
		},
		CORSAllowedOrigins: []string{"*"},
		SuccessDelay:       2 * time.Second,
	}
}

// Load reads CONFIG_FILE (if set) and then applies environment overrides.
// A broken config file is reported but never prevents startup.
func Load() (Config, error) {
	cfg := defaults()

	var fileErr error
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileErr = loadFile(path, &cfg)
	}

	applyEnv(&cfg)
	return cfg, fileErr
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = getEnvInt("GRPC_PORT", cfg.GRPCPort)

	cfg.Database.Driver = strings.ToLower(getEnv("DATABASE_DRIVER", cfg.Database.Driver))
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)

	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", cfg.Cache.TTL)

	cfg.Kafka.Brokers = getEnv("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", cfg.Kafka.Topic)

	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.ChatID = getEnv("TELEGRAM_CHAT_ID", cfg.Telegram.ChatID)
	cfg.Telegram.APIURL = getEnv("TELEGRAM_API_URL", cfg.Telegram.APIURL)

	cfg.Relay.URL = getEnv("RELAY_URL", cfg.Relay.URL)
	cfg.Relay.GRPCAddr = getEnv("RELAY_GRPC_ADDR", cfg.Relay.GRPCAddr)
	cfg.Relay.Timeout = getEnvDuration("RELAY_TIMEOUT", cfg.Relay.Timeout)

	cfg.AdminToken = getEnv("ADMIN_TOKEN", cfg.AdminToken)
	cfg.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.SuccessDelay = getEnvDuration("CHECKOUT_SUCCESS_DELAY", cfg.SuccessDelay)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
