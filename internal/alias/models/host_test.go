package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "siteadmin/pkg/domain-errors"
)

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain host", "example.com", "example.com"},
		{"host with path", "example.com/site", "example.com/site"},
		{"strips http scheme", "http://example.com", "example.com"},
		{"strips https scheme", "https://example.com/path", "example.com/path"},
		{"strips unc prefix", `\\fileserver\site`, `fileserver\site`},
		{"trims whitespace", "  example.com  ", "example.com"},
		{"preserves case", "Example.COM", "Example.COM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHost(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHost_RejectsBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		_, err := NormalizeHost(raw)
		require.Error(t, err, "input %q", raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}

func TestNormalizeHost_RejectsBareScheme(t *testing.T) {
	_, err := NormalizeHost("https://")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// Normalization must be idempotent so round-trips through the registry do
// not drift.
func TestNormalizeHost_Idempotent(t *testing.T) {
	inputs := []string{
		"example.com",
		"https://Example.COM/path",
		`\\server\share`,
		"  sub.example.com:8080/app  ",
	}
	for _, raw := range inputs {
		once, err := NormalizeHost(raw)
		require.NoError(t, err)
		twice, err := NormalizeHost(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", raw)
	}
}

func TestHostKey_CaseInsensitiveComparison(t *testing.T) {
	a, err := NormalizeHost("https://Example.COM/path")
	require.NoError(t, err)
	b, err := NormalizeHost("example.com/path")
	require.NoError(t, err)
	assert.Equal(t, HostKey(b), HostKey(a))
}
