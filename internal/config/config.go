package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
	Workday   Workday   `envPrefix:"WORKDAY_"`
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`
	Sentry    Sentry    `envPrefix:"SENTRY_"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "WORKLOG_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

type Logger struct {
	Level int `env:"LEVEL" envDefault:"0"`
}

type Sentry struct {
	DSN string `env:"DSN,expand"`
}
