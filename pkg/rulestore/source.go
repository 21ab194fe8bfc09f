package rulestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Document is the raw rule declaration document of one form.
type Document struct {
	Name string
	Data []byte
}

// Source yields the documents of every known form.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}

// DirSource reads *.yaml, *.yml and *.json files from a directory of fsys.
// Subdirectories are ignored. Two files with the same base name are an error.
type DirSource struct {
	fsys fs.FS
	dir  string
}

func NewDirSource(fsys fs.FS, dir string) *DirSource {
	if dir == "" {
		dir = "."
	}
	return &DirSource{fsys: fsys, dir: dir}
}

func (s *DirSource) Documents(ctx context.Context) ([]Document, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadRules, err)
	}

	docs := make([]Document, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := formName(e.Name())
		if !ok {
			continue
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: form %q is declared by %s and %s", ErrFailedToLoadRules, name, prev, e.Name())
		}
		seen[name] = e.Name()

		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrFailedToLoadRules, err)
		}
		data, err := fs.ReadFile(s.fsys, path.Join(s.dir, e.Name()))
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadRules, err)
		}
		docs = append(docs, Document{Name: name, Data: data})
	}

	slices.SortFunc(docs, func(a, b Document) int { return strings.Compare(a.Name, b.Name) })
	return docs, nil
}

func formName(file string) (string, bool) {
	ext := path.Ext(file)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		name := strings.TrimSuffix(file, ext)
		return name, name != ""
	}
	return "", false
}
