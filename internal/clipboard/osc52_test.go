package clipboard

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeOSC52Simple(t *testing.T) {
	assert.Equal(t, "\x1b]52;c;aGVsbG8=\x07", EncodeOSC52("hello"))
}

func TestEncodeOSC52Empty(t *testing.T) {
	assert.Equal(t, "\x1b]52;c;\x07", EncodeOSC52(""))
}

func TestEncodeOSC52RoundTrips(t *testing.T) {
	text := ".name | select(.active)"
	encoded := EncodeOSC52(text)

	require.True(t, strings.HasPrefix(encoded, "\x1b]52;c;"))
	require.True(t, strings.HasSuffix(encoded, "\x07"))

	payload := strings.TrimSuffix(strings.TrimPrefix(encoded, "\x1b]52;c;"), "\x07")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, text, string(decoded))
}

func TestParseBackendDefaultsToAuto(t *testing.T) {
	assert.Equal(t, BackendAuto, ParseBackend(""))
	assert.Equal(t, BackendAuto, ParseBackend("nonsense"))
	assert.Equal(t, BackendSystem, ParseBackend("system"))
	assert.Equal(t, BackendOSC52, ParseBackend("osc52"))
}
