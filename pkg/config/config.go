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

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string
	LogLevel       string
	LocalStorePath string

	CloudSyncEnabled  bool
	OrdersTableName   string
	UsersTableName    string
	SettingsTableName string
	DynamoDBEndpoint  string
	MirrorQueueURL    string
	MirrorBuffer      int

	SyncInterval  time.Duration
	RemoteTimeout time.Duration

	AllowNonPositiveDeposits bool
}

// LoadDotEnv loads a .env file if one exists. It reports whether it did.
func LoadDotEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:              fallback(os.Getenv("HTTP_PORT"), "8080"),
		LogLevel:          fallback(os.Getenv("LOG_LEVEL"), "info"),
		LocalStorePath:    fallback(os.Getenv("LOCAL_STORE_PATH"), "storefront.json"),
		OrdersTableName:   strings.TrimSpace(os.Getenv("DYNAMODB_ORDERS_TABLE_NAME")),
		UsersTableName:    strings.TrimSpace(os.Getenv("DYNAMODB_USERS_TABLE_NAME")),
		SettingsTableName: strings.TrimSpace(os.Getenv("DYNAMODB_SETTINGS_TABLE_NAME")),
		DynamoDBEndpoint:  strings.TrimSpace(os.Getenv("DYNAMODB_ENDPOINT")),
		MirrorQueueURL:    strings.TrimSpace(os.Getenv("MIRROR_QUEUE_URL")),
	}

	var err error
	if cfg.CloudSyncEnabled, err = parseBool("CLOUD_SYNC_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.AllowNonPositiveDeposits, err = parseBool("ALLOW_NON_POSITIVE_DEPOSITS", false); err != nil {
		return Config{}, err
	}
	if cfg.SyncInterval, err = parseDuration("SYNC_INTERVAL", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RemoteTimeout, err = parseDuration("REMOTE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.MirrorBuffer, err = parseInt("MIRROR_BUFFER", 256); err != nil {
		return Config{}, err
	}

	if cfg.CloudSyncEnabled && (cfg.OrdersTableName == "" || cfg.UsersTableName == "" || cfg.SettingsTableName == "") {
		return Config{}, errors.New("one or more DynamoDB table name environment variables are not set")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return v, nil
}

func parseInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}
