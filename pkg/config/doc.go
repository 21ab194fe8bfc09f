// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files. Every package that needs settings
// declares its own struct with `env` tags (pg.Config, redis.Config,
// validator.Config, ...) and the binary loads each of them once:
//
//	var pgCfg pg.Config
//	if err := config.Load(&pgCfg); err != nil {
//		return err
//	}
//
// Parsed values are cached per type. LoadEnv reads additional .env files and
// resets the cache; ForceReloadConfig re-parses a single type.
//
// # Errors
//
//   - ErrParsingConfig: a value could not be parsed or a required one is missing.
//   - ErrLoadingEnvFile: a .env file passed to LoadEnv could not be read.
//   - ErrNilPointer: nil passed to Load, MustLoad or ForceReloadConfig.
package config
