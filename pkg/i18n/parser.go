package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps a language code to its tree of translations.
// Nested maps are addressed with dot-separated keys.
type Catalog map[string]map[string]any

// Parser decodes one translation file into a Catalog.
type Parser interface {
	Parse(ctx context.Context, content []byte) (Catalog, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx context.Context, content []byte) (Catalog, error)

func (f ParserFunc) Parse(ctx context.Context, content []byte) (Catalog, error) {
	return f(ctx, content)
}

// YAMLParser decodes catalogs of the form:
//
//	en:
//	  validation:
//	    required: "%{field} is required"
var YAMLParser Parser = ParserFunc(func(ctx context.Context, content []byte) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return toCatalog(raw)
})

// JSONParser decodes the JSON form of the YAMLParser layout.
var JSONParser Parser = ParserFunc(func(ctx context.Context, content []byte) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return toCatalog(raw)
})

// ParserFor returns the parser matching the extension of name, or nil.
func ParserFor(name string) Parser {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "yaml", "yml":
		return YAMLParser
	case "json":
		return JSONParser
	}
	return nil
}

func toCatalog(raw map[string]any) (Catalog, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidCatalog)
	}
	c := make(Catalog, len(raw))
	for lang, tree := range raw {
		m, ok := tree.(map[string]any)
		if !ok || lang == "" {
			return nil, fmt.Errorf("%w: language %q: expected mapping, got %T", ErrInvalidCatalog, lang, tree)
		}
		c[lang] = m
	}
	return c, nil
}

// merge copies src into dst, merging nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			existing = make(map[string]any, len(sub))
			dst[k] = existing
		}
		merge(existing, sub)
	}
}
