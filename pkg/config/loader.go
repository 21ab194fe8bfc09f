package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry keeps one parsed copy per configuration type.
type registry struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	cache = &registry{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// Load parses environment variables into v using its `env` struct tags.
// The first call loads the .env file of the working directory, if any.
// Each configuration type is parsed once; later calls copy the cached value.
//
//	type ServerConfig struct {
//		Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//		RulesDir string `env:"RULES_DIR"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	return parse(key, v)
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ForceReloadConfig parses v again, ignoring and replacing the cached copy.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.values, key)
	return parse(key, v)
}

// LoadEnv loads the given .env files into the process environment.
// Variables already set are kept; among the files, later ones win.
// Cached configurations are dropped so the next Load sees the new values.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	// godotenv.Load never overwrites, so read all files first and apply the
	// merged result in one pass.
	merged := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		for k, val := range values {
			merged[k] = val
		}
	}
	if err := setMissing(merged); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}

	ResetCache()
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ResetCache drops every cached configuration.
func ResetCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	clear(cache.values)
}

// parse must be called with cache.mu held.
func parse[T any](key reflect.Type, v *T) error {
	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache.values[key] = parsed
	*v = parsed
	return nil
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
