package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain line", "policy.pdf\n", "policy.pdf"},
		{"strips whitespace", "  policy.pdf  \n", "policy.pdf"},
		{"partial line before EOF", "policy.pdf", "policy.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := bufio.NewReader(strings.NewReader(tt.input))

			got, err := GetSimpleText(r, "Enter file name", &out)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Enter file name")
		})
	}
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, "Enter file name", &out)
	require.Error(t, err)
}

func TestGetSessionCookie(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("  s3ss10n  "), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := GetSessionCookie(&out)

	require.NoError(t, err)
	assert.Equal(t, "s3ss10n", got)
	assert.Contains(t, out.String(), "Paste session cookie")
}
