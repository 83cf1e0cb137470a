// Package config loads environment variables into typed structs with caarlos0/env.
//
// A .env file in the working directory is read once, on first use, through
// godotenv; variables already set in the environment win. Each struct type is
// parsed once and later Load calls for the same type return the cached copy.
//
//	type Config struct {
//		Redis  redis.Config
//		Server server.Config
//
//		AppName string `env:"APP_NAME" envDefault:"counter"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Nested structs are parsed recursively, so integration packages expose their
// own env-tagged Config types that applications embed.
package config
