// Package logger provides structured logging helpers built on log/slog.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/asyncware/core/logger"
//
//	// Development: text output, debug level
//	log := logger.New(logger.WithDevelopment("counter"))
//
//	// Production: JSON output, info level
//	log := logger.New(logger.WithProduction("counter"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("region", "eu-1")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Context-Aware Logging
//
// Values stored in a context can be attached to every record logged with it:
//
//	log := logger.New(logger.WithContextValue("request_id", requestIDKey{}))
//	log.InfoContext(ctx, "processing request")
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, so they can be
// passed unconditionally:
//
//	log.Error("request failed",
//		logger.Error(err),
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.RequestID(id),
//	)
package logger
