package validator

// MessageLookup resolves a translation key and its interpolation values into
// display text. (*i18n.Translator).Lookup returns one bound to a language.
type MessageLookup func(key string, values map[string]any) string

// Translation keys of the built-in checks, without the configured prefix.
const (
	KeyRequired  = "required"
	KeyEmail     = "email"
	KeyURL       = "url"
	KeyMinLength = "min_length"
	KeyMaxLength = "max_length"
	KeyPattern   = "pattern"
	KeyMin       = "min"
	KeyMax       = "max"
	KeyLtDate    = "lt_date"
	KeyLteDate   = "lte_date"
	KeyGtDate    = "gt_date"
	KeyGteDate   = "gte_date"
	KeyCustom    = "custom"
)

// FaultMessage replaces the message of a custom or expression check that
// panicked, failed to compile or failed to run.
const FaultMessage = "validation error"

// message resolves the text for a failed check: the override message when the
// check carries one, the lookup result when a lookup is configured and knows
// the key, the built-in English text otherwise.
func (e *Engine) message(c check) ValidationError {
	verr := c.err
	if c.override {
		verr.Message = c.message
		verr.TranslationKey = ""
		return verr
	}

	key := e.prefix + verr.TranslationKey
	verr.TranslationKey = key
	if e.lookup == nil {
		return verr
	}

	if text := e.lookup(key, verr.TranslationValues); text != "" && text != key {
		verr.Message = text
	}
	return verr
}
