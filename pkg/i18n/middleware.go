package i18n

import (
	"net/http"
	"strings"
)

// maxHeaderLength bounds the Accept-Language value handed to the parser.
const maxHeaderLength = 4096

// LangExtractor returns the language requested by r, or "" when none is.
type LangExtractor func(r *http.Request) string

// ExtractorConfig names the request inputs an extractor reads.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
}

type ExtractorOption func(*ExtractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) { c.CookieName = name }
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) { c.QueryParamName = name }
}

// LangExtractor collects the preferences of r in priority order (query
// parameter, cookie, Accept-Language) and matches them against the
// translator's catalog.
func (t *Translator) LangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := ExtractorConfig{CookieName: "lang", QueryParamName: "lang"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request) string {
		prefs := make([]string, 0, 3)
		if cfg.QueryParamName != "" {
			if v := strings.TrimSpace(r.URL.Query().Get(cfg.QueryParamName)); v != "" {
				prefs = append(prefs, v)
			}
		}
		if cfg.CookieName != "" {
			if c, err := r.Cookie(cfg.CookieName); err == nil && strings.TrimSpace(c.Value) != "" {
				prefs = append(prefs, strings.TrimSpace(c.Value))
			}
		}
		if h := r.Header.Get("Accept-Language"); h != "" {
			if len(h) > maxHeaderLength {
				h = h[:maxHeaderLength]
			}
			prefs = append(prefs, h)
		}
		if len(prefs) == 0 {
			return ""
		}
		return t.Match(prefs...)
	}
}

// Middleware stores the extracted language in the request context, falling
// back to DefaultLanguage.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if extr != nil {
				lang = extr(r)
			}
			if lang == "" {
				lang = DefaultLanguage
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
