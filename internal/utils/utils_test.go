package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain", input: "1000", expected: "1000"},
		{name: "whitespace", input: " 42 ", expected: "42"},
		{name: "beyond uint64", input: "84096000000000000000", expected: "84096000000000000000"},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "hex", input: "0x10", wantErr: true},
		{name: "decimal point", input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount.String())
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"cliff", "clamp"}, "clamp"))
	assert.False(t, Contains([]string{"cliff", "clamp"}, "drain"))
	assert.False(t, Contains([]int{}, 1))
}
