package redis

import "time"

// Config holds the connection settings of the form state store.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                               // ConnectionURL is in the format "redis://:password@localhost:6379/0". Empty disables Redis.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`     // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`    // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`  // ConnectTimeout bounds the whole connection procedure.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"fieldrules"` // KeyPrefix namespaces the keys written by this service.
	StateTTL       time.Duration `env:"REDIS_STATE_TTL" envDefault:"24h"`        // StateTTL expires idle form sessions; zero keeps them forever.
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
