package asyncware

import (
	"io"
	"log/slog"
)

// Option configures an adapter at construction time.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger used to record forwarded failures at debug level.
// Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
