package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
)

// TranslationAdapter loads the catalog a Translator serves.
type TranslationAdapter interface {
	Load(ctx context.Context) (Catalog, error)
}

// MapAdapter serves an in-memory catalog.
type MapAdapter struct {
	Data Catalog
}

func (a *MapAdapter) Load(_ context.Context) (Catalog, error) {
	if a.Data == nil {
		return Catalog{}, nil
	}
	return a.Data, nil
}

// FSAdapter loads every YAML and JSON file of a directory in fsys.
// Files are read in lexical order; a later file overrides keys of an earlier
// one for the same language. Works with embed.FS and os.DirFS alike.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter creates an adapter for dir within fsys. Use "." for the root.
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (Catalog, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && ParserFor(e.Name()) != nil {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	catalog := Catalog{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		p := path.Join(a.dir, name)
		content, err := fs.ReadFile(a.fsys, p)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := ParserFor(name).Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		for lang, tree := range parsed {
			if catalog[lang] == nil {
				catalog[lang] = map[string]any{}
			}
			merge(catalog[lang], tree)
		}
	}
	return catalog, nil
}
