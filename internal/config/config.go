package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/teamflow/internal/llm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config defines application configuration.
type Config struct {
	Store StoreConfig   `yaml:"store"`
	LLM   llm.LLMConfig `yaml:"llm"`
	Log   LogConfig     `yaml:"log"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"`
	DBPath  string      `yaml:"db_path"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when nothing is set. The SQLite
// file lives under ~/.teamflow when the home directory is known.
func Default() Config {
	dbPath := "teamflow.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".teamflow", "teamflow.db")
	}
	return Config{
		Store: StoreConfig{
			Backend: StoreSQLite,
			DBPath:  dbPath,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "teamflow:",
			},
		},
		LLM: llm.DefaultConfig(),
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration in order: defaults, a .env file in the working
// directory if present, the YAML file named by TEAMFLOW_CONFIG, then
// environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("TEAMFLOW_CONFIG"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := getenv("TEAMFLOW_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := getenv("TEAMFLOW_DB"); v != "" {
		cfg.Store.DBPath = v
	}
	if v := getenv("TEAMFLOW_REDIS_ADDR"); v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v := getenv("TEAMFLOW_REDIS_PASSWORD"); v != "" {
		cfg.Store.Redis.Password = v
	}
	if v := getenv("TEAMFLOW_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TEAMFLOW_REDIS_DB: %w", err)
		}
		cfg.Store.Redis.DB = n
	}
	if v := getenv("TEAMFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("TEAMFLOW_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	cfg.LLM.ApplyEnv(getenv)
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreSQLite:
		if c.Store.DBPath == "" {
			return fmt.Errorf("sqlite store requires a database path")
		}
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("redis store requires an address")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want %s or %s)", c.Store.Backend, StoreSQLite, StoreRedis)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
