package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "single word",
			input:  "Acme",
			expect: "acme",
		},
		{
			name:   "whitespace becomes hyphen",
			input:  "Globex Corporation",
			expect: "globex-corporation",
		},
		{
			name:   "whitespace runs collapse",
			input:  "  Initech   Global  ",
			expect: "initech-global",
		},
		{
			name:   "already lowercase",
			input:  "acme",
			expect: "acme",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.expect, DeriveSlug(tt.input))
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expectSlug  string
		expectError bool
	}{
		{
			name:       "already normalized",
			input:      "acme",
			expectSlug: "acme",
		},
		{
			name:       "trims whitespace and lowercases",
			input:      "  Globex-Corp ",
			expectSlug: "globex-corp",
		},
		{
			name:        "empty string",
			input:       "   ",
			expectError: true,
		},
		{
			name:        "invalid characters",
			input:       "acme_corp",
			expectError: true,
		},
		{
			name:        "leading hyphen",
			input:       "-bad-slug",
			expectError: true,
		},
		{
			name:        "trailing hyphen",
			input:       "bad-slug-",
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			slug, err := NormalizeSlug(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectSlug, slug)
		})
	}
}
