package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "shorter than max", input: "abc", max: 10, want: "abc"},
		{name: "exact", input: "abc", max: 3, want: "abc"},
		{name: "cut", input: "abcdef", max: 4, want: "abcd"},
		{name: "multibyte boundary", input: "aé", max: 2, want: "a"},
		{name: "zero", input: "abc", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.max))
		})
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "x", SafeString(StringPtr("x")))
	assert.True(t, StringNilOrEmpty(StringPtr("")))
	assert.Equal(t, "uniswap", NormalizeKey("  UniSwap "))
}

func TestParentSlug(t *testing.T) {
	assert.Equal(t, "uniswap", ParentSlug("parent#uniswap"))
	assert.Equal(t, "uniswap", ParentSlug(" uniswap "))
	assert.Equal(t, "", ParentSlug("parent#"))
}
