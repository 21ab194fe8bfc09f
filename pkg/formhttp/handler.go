package formhttp

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/fieldrules/pkg/formstate"
	"github.com/dmitrymomot/fieldrules/pkg/httpserver"
	"github.com/dmitrymomot/fieldrules/pkg/i18n"
)

// maxBodySize bounds request bodies of the validation endpoints.
const maxBodySize = 1 << 20

// Handler serves the forms of a formstate.Manager.
type Handler struct {
	forms      *formstate.Manager
	translator *i18n.Translator
	checks     map[string]httpserver.Check
	logger     *slog.Logger
	router     chi.Router
}

// Option configures a Handler.
type Option func(*Handler)

// WithTranslator negotiates the request language against the translator's catalog.
func WithTranslator(t *i18n.Translator) Option {
	return func(h *Handler) {
		h.translator = t
	}
}

// WithHealthCheck adds a named readiness probe to /healthz.
func WithHealthCheck(name string, check httpserver.Check) Option {
	return func(h *Handler) {
		if check != nil {
			h.checks[name] = check
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func New(forms *formstate.Manager, opts ...Option) *Handler {
	h := &Handler{
		forms:  forms,
		checks: make(map[string]httpserver.Check),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.router = h.routes()
	return h
}

// Router returns the chi router with every route mounted.
func (h *Handler) Router() chi.Router {
	return h.router
}

func (h *Handler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(h.logger, 5*time.Second, h.checks))

	r.Group(func(r chi.Router) {
		if h.translator != nil {
			r.Use(i18n.Middleware(h.translator.LangExtractor()))
		}
		r.Get("/forms", h.listForms)
		r.Route("/forms/{form}", func(r chi.Router) {
			r.Post("/validate", h.validate)
			r.Post("/live", h.live)
			r.Get("/state", h.state)
		})
	})
	return r
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}
