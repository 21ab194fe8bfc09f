package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/rules"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("zero value is unset", func(t *testing.T) {
		t.Parallel()
		var c rules.Check[int]
		assert.False(t, c.IsSet())
		_, ok := c.Message()
		assert.False(t, ok)
	})

	t.Run("plain carries value only", func(t *testing.T) {
		t.Parallel()
		c := rules.Plain(3)
		assert.True(t, c.IsSet())
		assert.Equal(t, 3, c.Value())
		_, ok := c.Message()
		assert.False(t, ok)
	})

	t.Run("override carries value and message", func(t *testing.T) {
		t.Parallel()
		c := rules.Override("^[a-z]+$", "letters only")
		assert.Equal(t, "^[a-z]+$", c.Value())
		msg, ok := c.Message()
		assert.True(t, ok)
		assert.Equal(t, "letters only", msg)
	})

	t.Run("boolean checks need a true value", func(t *testing.T) {
		t.Parallel()
		assert.True(t, rules.Enabled(rules.Plain(true)))
		assert.True(t, rules.Enabled(rules.Override(true, "M")))
		assert.False(t, rules.Enabled(rules.Plain(false)))
		assert.False(t, rules.Enabled(rules.Check[bool]{}))
	})
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		failed  bool
		message string
	}{
		{name: "true passes", in: true},
		{name: "false fails", in: false, failed: true},
		{name: "string fails with message", in: "Invalid name", failed: true, message: "Invalid name"},
		{name: "empty string fails with default", in: "", failed: true},
		{name: "nil fails", in: nil, failed: true},
		{name: "number fails", in: 1, failed: true},
		{name: "outcome passes through", in: rules.FailWith("x"), failed: true, message: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := rules.OutcomeOf(tt.in)
			assert.Equal(t, tt.failed, o.Failed())
			msg, _ := o.Message()
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("shorthand becomes required only", func(t *testing.T) {
		t.Parallel()
		rs := rules.Normalize(rules.Declarations{rules.Required("email")})

		require.Equal(t, 1, rs.Len())
		r, ok := rs.Get("email")
		require.True(t, ok)
		assert.Equal(t, "email", r.Field)
		assert.True(t, rules.Enabled(r.Required))
		assert.False(t, r.IsEmail.IsSet())
	})

	t.Run("spec is copied and tagged with field", func(t *testing.T) {
		t.Parallel()
		spec := &rules.Spec{MinLength: rules.Plain(3), MaxLength: rules.Plain(1)}
		rs := rules.Normalize(rules.Declarations{rules.Field("name", spec)})

		r, ok := rs.Get("name")
		require.True(t, ok)
		assert.Equal(t, "name", r.Field)
		assert.Equal(t, 3, r.MinLength.Value())
		assert.Equal(t, 1, r.MaxLength.Value())

		spec.MinLength = rules.Plain(10)
		r, _ = rs.Get("name")
		assert.Equal(t, 3, r.MinLength.Value(), "rule set must not alias the declaration")
	})

	t.Run("keeps declaration order", func(t *testing.T) {
		t.Parallel()
		rs := rules.Normalize(rules.Declarations{
			rules.Required("zeta"),
			rules.Required("alpha"),
			rules.Required("mid"),
		})
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, rs.Fields())
	})

	t.Run("duplicate field keeps first position and last spec", func(t *testing.T) {
		t.Parallel()
		rs := rules.Normalize(rules.Declarations{
			rules.Required("a"),
			rules.Required("b"),
			rules.Field("a", &rules.Spec{MinLength: rules.Plain(2)}),
		})
		assert.Equal(t, []string{"a", "b"}, rs.Fields())
		r, _ := rs.Get("a")
		assert.False(t, r.Required.IsSet())
		assert.Equal(t, 2, r.MinLength.Value())
	})

	t.Run("empty and nil rule sets", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0, rules.Normalize(nil).Len())

		var rs *rules.RuleSet
		assert.Equal(t, 0, rs.Len())
		assert.Nil(t, rs.Rules())
		_, ok := rs.Get("x")
		assert.False(t, ok)
	})

	t.Run("identical declarations normalize identically", func(t *testing.T) {
		t.Parallel()
		decls := rules.Declarations{
			rules.Required("email"),
			rules.Field("age", &rules.Spec{Min: rules.Plain(18.0)}),
		}
		assert.Equal(t, rules.Normalize(decls).Rules(), rules.Normalize(decls).Rules())
	})
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	t.Run("accepts shorthand and specs in key order", func(t *testing.T) {
		t.Parallel()
		decls, err := rules.FromMap(map[string]any{
			"name":  true,
			"age":   rules.Spec{Min: rules.Plain(1.0)},
			"email": &rules.Spec{IsEmail: rules.Plain(true)},
			"skip":  false,
		})
		require.NoError(t, err)

		rs := rules.Normalize(decls)
		assert.Equal(t, []string{"age", "email", "name"}, rs.Fields())
	})

	t.Run("rejects other types", func(t *testing.T) {
		t.Parallel()
		_, err := rules.FromMap(map[string]any{"name": "yes"})
		assert.ErrorIs(t, err, rules.ErrInvalidField)
	})
}
