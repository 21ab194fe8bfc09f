// Package pg connects to the PostgreSQL database holding rule declarations.
//
// Connect builds a pgx pool from Config with retries, Migrate applies the
// embedded goose migrations creating the form_rules table, and Healthcheck
// returns a probe for the health endpoint.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
