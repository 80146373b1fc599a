package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `abc`, `"abc"`},
		{"empty", ``, `""`},
		{"double quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline and tab", "a\n\tb", `"a\n\tb"`},
		{"regex pattern", `[0-9]+`, `"[0-9]+"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeString(tt.raw))
		})
	}
}

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    string
	}{
		{"plain", `"abc"`, `abc`},
		{"empty", `""`, ``},
		{"escaped quote", `"a\"b"`, `a"b`},
		{"escaped backslash then n", `"a\\n"`, `a\n`},
		{"real newline escape", `"a\n"`, "a\n"},
		{"tab", `"\t"`, "\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnescapeString(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnescapeStringErrors(t *testing.T) {
	for _, literal := range []string{``, `"`, `abc`, `"abc`, `"a\"`, `"a\x"`} {
		_, err := UnescapeString(literal)
		assert.Error(t, err, "literal %q", literal)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, raw := range []string{`abc`, `a"b\c`, "line1\nline2", `\\`, "\t\r\v\f\a\b"} {
		got, err := UnescapeString(EscapeString(raw))
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}
