package rulestore_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/rulestore"
)

func TestDirSource_Documents(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"forms/signup.yaml":     {Data: []byte("email:\n  required: true\n")},
		"forms/login.json":      {Data: []byte(`{"email": true}`)},
		"forms/profile.YML":     {Data: []byte("name: true\n")},
		"forms/notes.txt":       {Data: []byte("ignored")},
		"forms/archive/old.yml": {Data: []byte("ignored: true\n")},
	}

	docs, err := rulestore.NewDirSource(fsys, "forms").Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "login", docs[0].Name)
	assert.Equal(t, "profile", docs[1].Name)
	assert.Equal(t, "signup", docs[2].Name)
	assert.Equal(t, "email:\n  required: true\n", string(docs[2].Data))
}

func TestDirSource_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := rulestore.NewDirSource(fstest.MapFS{}, "nope").Documents(context.Background())
		assert.ErrorIs(t, err, rulestore.ErrFailedToLoadRules)
	})

	t.Run("duplicate form", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"signup.yaml": {Data: []byte("a: true")},
			"signup.json": {Data: []byte(`{"a": true}`)},
		}
		_, err := rulestore.NewDirSource(fsys, "").Documents(context.Background())
		assert.ErrorIs(t, err, rulestore.ErrFailedToLoadRules)
		assert.Contains(t, err.Error(), "signup")
	})
}
