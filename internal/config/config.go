package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090" env-description:"REST API port"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091" env-description:"WebSocket port"`
	ScoreTTL   time.Duration `yaml:"score-ttl" env:"SCORE_TTL" env-default:"24h" env-description:"how long an idle score is kept, 0 keeps it forever"`
	Redis      Redis         `yaml:"redis" env-prefix:"REDIS_"`
}

type Redis struct {
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file; environment variables override it.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// SlogLevel maps LogLevel to a slog level. Unknown values log at info.
func (that *Config) SlogLevel() slog.Level {
	switch strings.ToLower(that.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
