// Package i18n serves translated messages from YAML or JSON catalogs.
//
// A catalog maps language codes to nested translation trees addressed with
// dot-separated keys. Placeholders use the %{name} syntax:
//
//	en:
//	  validation:
//	    required: "%{field} is required"
//	    min_length: "%{field} must be at least %{min} characters long"
//
// Catalogs are loaded through a TranslationAdapter: MapAdapter for in-memory
// data and FSAdapter for a directory of an fs.FS (embed.FS or os.DirFS).
//
//	t, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales.FS, "."))
//	engine := validator.New(validator.WithLookup(t.Lookup("de")))
//
// Language negotiation uses golang.org/x/text/language. Translator.Match picks
// the best catalog language for a list of preferences; Middleware combined
// with Translator.LangExtractor stores it in the request context, where
// GetLocale reads it back.
package i18n
