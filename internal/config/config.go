package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeTerminal = "terminal"
	ModeHTTP     = "http"

	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string  `yaml:"log-file" env:"LOG_FILE"`
	Mode     string  `yaml:"mode" env:"MODE" env-default:"terminal"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	AI       AI      `yaml:"ai"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
}

// AI settings. Zero values get their defaults, so the opponent is switched
// off with disabled rather than enabled: false.
type AI struct {
	Disabled bool          `yaml:"disabled" env:"AI_DISABLED"`
	Mark     string        `yaml:"mark" env:"AI_MARK" env-default:"O"`
	Delay    time.Duration `yaml:"delay" env:"AI_DELAY" env-default:"500ms"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"1h"`
}

// MustLoad - load all configurations in config.yml file. Without the file
// only environment variables and defaults are used.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		err = cleanenv.ReadConfig(path, config)
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, err
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Mode {
	case ModeTerminal, ModeHTTP:
	default:
		return fmt.Errorf("unknown mode %q", that.Mode)
	}

	switch that.Storage.Driver {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}

	if that.AI.Mark != "X" && that.AI.Mark != "O" {
		return fmt.Errorf("ai mark must be X or O, got %q", that.AI.Mark)
	}

	if that.AI.Delay < 0 {
		return fmt.Errorf("ai delay must not be negative, got %s", that.AI.Delay)
	}

	return nil
}

func (that *AI) Enabled() bool {
	return !that.Disabled
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
