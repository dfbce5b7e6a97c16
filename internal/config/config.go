package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/colixy-dashboard/internal/config/env"
)

var cfg *config

type config struct {
	Server  Server
	Backend Backend
	Logger  Logger
	Session Session
	Kafka   Kafka
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	backendCfg, err := envconfig.NewBackendConfig()
	if err != nil {
		return fmt.Errorf("%s Backend: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	sessionCfg, err := envconfig.NewSessionConfig()
	if err != nil {
		return fmt.Errorf("%s Session: %w", op, err)
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	cfg = &config{
		Server:  serverCfg,
		Backend: backendCfg,
		Logger:  loggerCfg,
		Session: sessionCfg,
		Kafka:   kafkaCfg,
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
