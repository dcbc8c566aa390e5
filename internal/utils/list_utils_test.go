package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"Short", "abc", 5, "abc"},
		{"Exact", "abcde", 5, "abcde"},
		{"Ascii", "abcdef", 3, "abc..."},
		{"MultiByte", "äöüßé", 3, "äöü..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.input, tc.n)
			assert.Equal(t, tc.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestDecodeListErrorKeepsValidText(t *testing.T) {
	_, err := DecodeList([]byte(`"` + strings.Repeat("ä", 40) + `"`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), strings.Repeat("ä", 31)+"...")
}
