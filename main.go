package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "config.yml"
)

// main - loads the config, builds the JSON logger and runs the REST and WebSocket servers.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(configPath())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: conf.SlogLevel()}))

	logger.Info("starting", "http_port", conf.HTTPPort, "socket_port", conf.SocketPort, "redis", conf.Redis.GetRedisAddr())

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// configPath - the -config flag, then CONFIG_PATH, then config.yml.
func configPath() string {
	fallback := os.Getenv(configPathEnv)
	if fallback == "" {
		fallback = defaultConfigPath
	}

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	path := flags.String("config", fallback, "path to the YAML config file (env "+configPathEnv+")")

	header := "Environment variables override the config file:"
	flags.Usage = cleanenv.FUsage(flags.Output(), &config.Config{}, &header, flags.PrintDefaults)

	_ = flags.Parse(os.Args[1:])

	return *path
}
