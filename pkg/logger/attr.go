package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Field records the validated field key.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Form records the form (rule set) name.
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Session records the form session id.
func Session(id string) slog.Attr {
	return slog.String("session", id)
}

// Fields records how many fields a rule set declares.
func Fields(n int) slog.Attr {
	return slog.Int("fields", n)
}

// Language records the language used for messages.
func Language(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// Component records the component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// App records the application name.
func App(name string) slog.Attr {
	return slog.String("app", name)
}

// Duration records a duration under "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
