package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		want     []string
		wantErrs int
	}{
		{
			name:  "trims surrounding whitespace",
			input: []string{"  golang ", "\tapi\n"},
			want:  []string{"golang", "api"},
		},
		{
			name:  "drops empty and whitespace-only entries",
			input: []string{"", "  ", "rails"},
			want:  []string{"rails"},
		},
		{
			name:  "dedupes case-insensitively keeping the first spelling",
			input: []string{"Ruby", " ruby ", "RUBY"},
			want:  []string{"Ruby"},
		},
		{
			name:     "reports an over-length name without touching the rest",
			input:    []string{"ok", strings.Repeat("x", 11)},
			want:     []string{"ok"},
			wantErrs: 1,
		},
		{
			name:  "counts runes, not bytes",
			input: []string{"こんにちは世界です！"},
			want:  []string{"こんにちは世界です！"},
		},
		{
			name:     "eleven runes is over the limit",
			input:    []string{"こんにちは世界です！ね"},
			wantErrs: 1,
		},
		{
			name:  "nil input is a no-op",
			input: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fieldErrs := NormalizeTagNames(tt.input)

			assert.Equal(t, tt.want, got)
			require.Len(t, fieldErrs, tt.wantErrs)
			for _, fe := range fieldErrs {
				assert.Equal(t, "tags", fe.Field)
				assert.Contains(t, fe.Message, "at most 10 characters")
			}
		})
	}
}
