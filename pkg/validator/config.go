package validator

import (
	"errors"
	"regexp"
)

// NoTranslationPrefix is the sentinel prefix value meaning "no prefix".
const NoTranslationPrefix = "-"

// Config is the environment form of the engine options.
type Config struct {
	EmailRegex        string `env:"VALIDATOR_EMAIL_REGEX"`                                  // EmailRegex overrides the default isEmail pattern.
	URLRegex          string `env:"VALIDATOR_URL_REGEX"`                                    // URLRegex overrides the default isURL pattern.
	DateFormat        string `env:"VALIDATOR_DATE_FORMAT" envDefault:"2006-01-02"`          // DateFormat is the Go layout used for date targets in messages.
	TranslationPrefix string `env:"VALIDATOR_TRANSLATION_PREFIX" envDefault:"validation."` // TranslationPrefix is prepended to message keys; "-" disables it.
	CacheSize         int    `env:"VALIDATOR_CACHE_SIZE" envDefault:"256"`                  // CacheSize bounds the compiled pattern and expression caches.
}

// NewFromConfig creates an Engine from cfg. Options passed explicitly are
// applied after the config and win over it.
func NewFromConfig(cfg Config, opts ...Option) (*Engine, error) {
	configOpts := make([]Option, 0, 5+len(opts))

	if cfg.EmailRegex != "" {
		re, err := regexp.Compile(cfg.EmailRegex)
		if err != nil {
			return nil, errors.Join(ErrInvalidRegex, err)
		}
		configOpts = append(configOpts, WithEmailRegex(re))
	}
	if cfg.URLRegex != "" {
		re, err := regexp.Compile(cfg.URLRegex)
		if err != nil {
			return nil, errors.Join(ErrInvalidRegex, err)
		}
		configOpts = append(configOpts, WithURLRegex(re))
	}
	if cfg.DateFormat != "" {
		configOpts = append(configOpts, WithDateFormat(cfg.DateFormat))
	}
	if cfg.TranslationPrefix != "" {
		configOpts = append(configOpts, WithTranslationPrefix(cfg.TranslationPrefix))
	}
	if cfg.CacheSize > 0 {
		configOpts = append(configOpts, WithCacheSize(cfg.CacheSize))
	}

	configOpts = append(configOpts, opts...)
	return New(configOpts...), nil
}
