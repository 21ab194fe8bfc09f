// Command fieldrulesd serves declarative form validation over HTTP.
//
// Rule declarations are read from RULES_DIR, or from PostgreSQL when
// PG_CONN_URL is set. Form state is kept in Redis when REDIS_URL is set and
// in memory otherwise.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/fieldrules/locales"
	"github.com/dmitrymomot/fieldrules/pkg/config"
	"github.com/dmitrymomot/fieldrules/pkg/formhttp"
	"github.com/dmitrymomot/fieldrules/pkg/formstate"
	"github.com/dmitrymomot/fieldrules/pkg/httpserver"
	"github.com/dmitrymomot/fieldrules/pkg/i18n"
	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/pg"
	"github.com/dmitrymomot/fieldrules/pkg/redis"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
	"github.com/dmitrymomot/fieldrules/pkg/rulestore"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	Name            string        `env:"APP_NAME" envDefault:"fieldrulesd"`
	RulesDir        string        `env:"RULES_DIR" envDefault:"rules"`
	ReloadInterval  time.Duration `env:"RULES_RELOAD_INTERVAL" envDefault:"0s"` // Zero disables periodic reloads.
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithFormScopeExtractor(),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		validatorCfg validator.Config
		redisCfg     redis.Config
		pgCfg        pg.Config
		httpCfg      httpserver.Config
	)
	if err := errors.Join(
		config.Load(&validatorCfg),
		config.Load(&redisCfg),
		config.Load(&pgCfg),
		config.Load(&httpCfg),
	); err != nil {
		return err
	}

	engine, err := validator.NewFromConfig(validatorCfg, validator.WithLogger(log))
	if err != nil {
		return err
	}

	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales.FS, "."),
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var checks []formhttp.Option

	var store formstate.Store = formstate.NewMemoryStore()
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		store = formstate.NewRedisStore(client,
			formstate.WithKeyPrefix(redisCfg.KeyPrefix),
			formstate.WithTTL(redisCfg.StateTTL),
		)
		checks = append(checks, formhttp.WithHealthCheck("redis", redis.Healthcheck(client)))
		log.InfoContext(ctx, "form state stored in redis")
	}

	var source rulestore.Source = rulestore.NewDirSource(os.DirFS(cfg.RulesDir), ".")
	if pgCfg.Enabled() {
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			return err
		}
		source = rulestore.NewPostgresSource(pool)
		checks = append(checks, formhttp.WithHealthCheck("postgres", pg.Healthcheck(pool)))
		log.InfoContext(ctx, "rule declarations read from postgres")
	}

	manager := formstate.NewManager(engine, store, log,
		formstate.WithLookup(func(ctx context.Context) validator.MessageLookup {
			return tr.Lookup(i18n.GetLocale(ctx))
		}),
	)

	registry := newRegistry(source, validatorCfg, log)
	registry.OnReload(manager.Apply)
	if err := registry.Reload(ctx); err != nil {
		return err
	}
	go func() {
		if err := registry.Run(ctx, cfg.ReloadInterval); err != nil {
			log.ErrorContext(ctx, "rule reload loop stopped", logger.Error(err))
		}
	}()

	handler := formhttp.New(manager, append(checks,
		formhttp.WithTranslator(tr),
		formhttp.WithLogger(log),
	)...)

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return server.Run(ctx, handler)
}

// newRegistry decodes date check targets with the same layout the engine
// formats them with, so rule documents may use VALIDATOR_DATE_FORMAT.
func newRegistry(source rulestore.Source, cfg validator.Config, log *slog.Logger) *rulestore.Registry {
	return rulestore.NewRegistry(source,
		rulestore.WithParseOptions(rules.WithDateLayout(cfg.DateFormat)),
		rulestore.WithLogger(log),
	)
}
