package counter

import (
	"github.com/dmitrymomot/asyncware/core/server"
	"github.com/dmitrymomot/asyncware/integration/database/redis"
)

type Config struct {
	Redis  redis.Config
	Server server.Config

	AppName   string `env:"APP_NAME" envDefault:"counter"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	KeyPrefix string `env:"COUNTER_KEY_PREFIX" envDefault:"hits:"`
}

// IsProduction reports whether the service runs with production logging.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
