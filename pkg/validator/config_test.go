package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/rules"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies config", func(t *testing.T) {
		t.Parallel()

		var keys []string
		engine, err := validator.NewFromConfig(validator.Config{
			EmailRegex:        `@example\.org$`,
			TranslationPrefix: "-",
		}, validator.WithLookup(func(key string, _ map[string]any) string {
			keys = append(keys, key)
			return key
		}))
		require.NoError(t, err)

		rs := rules.Normalize(rules.Declarations{
			rules.Field("email", &rules.Spec{IsEmail: rules.Plain(true)}),
		})
		res := engine.Validate(context.Background(), rs, map[string]any{"email": "a@example.com"})
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"email"}, keys)

		res = engine.Validate(context.Background(), rs, map[string]any{"email": "a@example.org"})
		assert.True(t, res.Valid)
	})

	t.Run("invalid regex", func(t *testing.T) {
		t.Parallel()

		_, err := validator.NewFromConfig(validator.Config{URLRegex: `(`})
		assert.ErrorIs(t, err, validator.ErrInvalidRegex)
	})

	t.Run("zero config uses defaults", func(t *testing.T) {
		t.Parallel()

		engine, err := validator.NewFromConfig(validator.Config{})
		require.NoError(t, err)

		rs := rules.Normalize(rules.Declarations{rules.Required("name")})
		res := engine.Validate(context.Background(), rs, nil)
		assert.Equal(t, "field is required", res.Errors["name"])
	})
}
