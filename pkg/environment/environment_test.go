package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fieldrules/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want environment.Environment
	}{
		{in: "production", want: environment.Production},
		{in: "prod", want: environment.Production},
		{in: " PROD ", want: environment.Production},
		{in: "staging", want: environment.Staging},
		{in: "stage", want: environment.Staging},
		{in: "development", want: environment.Development},
		{in: "dev", want: environment.Development},
		{in: "", want: environment.Development},
		{in: "qa", want: environment.Development},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := environment.Parse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == environment.Production, got.IsProduction())
			assert.Equal(t, tt.want == environment.Staging, got.IsStaging())
			assert.Equal(t, tt.want == environment.Development, got.IsDevelopment())
		})
	}
}
