// Package redis connects to the Redis server backing the form state store.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//		store := formstate.NewRedisStore(client, formstate.WithKeyPrefix(cfg.KeyPrefix))
//	}
//
// Connect retries the initial ping; Healthcheck returns a probe for the
// service's health endpoint.
package redis
