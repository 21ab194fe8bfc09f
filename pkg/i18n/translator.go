package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// DefaultLanguage is used when no language is requested or matched.
const DefaultLanguage = "en"

// Translator resolves dot-separated keys against a catalog and interpolates
// %{name} placeholders.
type Translator struct {
	mu           sync.RWMutex
	translations Catalog
	matcher      language.Matcher
	matchLangs   []string
	tags         []string

	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	adapter        TranslationAdapter
}

// NewTranslator loads the adapter's catalog and returns a ready Translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		adapter:       adapter,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload reads the catalog from the adapter again and swaps it in.
func (t *Translator) Reload(ctx context.Context) error {
	catalog, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}

	langs := make([]string, 0, len(catalog))
	for lang := range catalog {
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	// The default language goes first so the matcher falls back to it.
	matchLangs := make([]string, 0, len(langs)+1)
	matchLangs = append(matchLangs, t.defaultLang)
	for _, lang := range langs {
		if lang != t.defaultLang {
			matchLangs = append(matchLangs, lang)
		}
	}
	supported := make([]language.Tag, len(matchLangs))
	for i, lang := range matchLangs {
		supported[i] = language.Make(lang)
	}

	t.mu.Lock()
	t.translations = catalog
	t.tags = langs
	t.matchLangs = matchLangs
	t.matcher = language.NewMatcher(supported)
	t.mu.Unlock()

	if len(langs) == 0 {
		t.logger.WarnContext(ctx, "no translations loaded")
		return nil
	}
	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", langs))
	return nil
}

// SupportedLanguages returns the catalog's language codes in lexical order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.tags)
}

// Match picks the best supported language for the given preferences, in the
// formats accepted by language.Parse or an Accept-Language header value.
// The default language is returned when nothing matches.
func (t *Translator) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(tags) == 0 || t.matcher == nil {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.matchLangs[idx]
}

// Has reports whether key resolves to a string for lang.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := lookupString(t.translations[lang], key)
	return ok
}

// T translates key for lang. Values replace %{name} placeholders; a missing
// value leaves its placeholder untouched.
//
// When lang has no such key the default language is tried. When neither has
// it, the key itself is returned (or "" with WithFallbackToKey(false)).
//
//	// validation.min_length: "%{field} must be at least %{min} characters"
//	t.T("en", "validation.min_length", map[string]any{"field": "name", "min": 3})
//	// name must be at least 3 characters
func (t *Translator) T(lang, key string, values map[string]any) string {
	t.mu.RLock()
	tmpl, ok := lookupString(t.translations[lang], key)
	if !ok && lang != t.defaultLang {
		tmpl, ok = lookupString(t.translations[t.defaultLang], key)
	}
	t.mu.RUnlock()

	if ok {
		return interpolate(tmpl, values)
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", logger.Language(lang), slog.String("key", key))
	}
	if t.fallbackToKey {
		return key
	}
	return ""
}

// Tc translates key for the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, values map[string]any) string {
	return t.T(GetLocale(ctx), key, values)
}

// Lookup binds the translator to lang as a validator message lookup.
// Missing keys come back as the key, which the validator treats as "use the
// built-in message".
func (t *Translator) Lookup(lang string) validator.MessageLookup {
	return func(key string, values map[string]any) string {
		return t.T(lang, key, values)
	}
}

// lookupString walks a dot-separated key through nested maps.
func lookupString(tree map[string]any, key string) (string, bool) {
	if tree == nil {
		return "", false
	}

	var current any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		if current, ok = m[part]; !ok {
			return "", false
		}
	}

	switch v := current.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func interpolate(tmpl string, values map[string]any) string {
	if len(values) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := values[match[2:len(match)-1]]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}
