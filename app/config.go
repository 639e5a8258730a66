package app

import "github.com/dmitrymomot/pipeline/core/server"

// Config is the application configuration loaded from the environment.
type Config struct {
	Server server.Config

	AppName  string `env:"APP_NAME" envDefault:"pipeline"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
