package secretstore

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	s, err := Open(OpenOptions{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.GetString("alpaca/api_key")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetString("alpaca/api_key", "PKTEST"))
	v, found, err := s.GetString(" alpaca/api_key ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "PKTEST", v)

	require.NoError(t, s.SetString("alpaca/empty", ""))
	v, found, err = s.GetString("alpaca/empty")
	require.NoError(t, err)
	assert.True(t, found, "empty values are still present")
	assert.Empty(t, v)
}

func TestStore_Errors(t *testing.T) {
	_, err := Open(OpenOptions{})
	assert.Error(t, err)

	var s *Store
	_, _, err = s.GetString("k")
	assert.Error(t, err)
	assert.NoError(t, s.Close())
}

func TestParseKey(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	b, err := ParseKey("0x" + hexKey)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	b64 := base64.StdEncoding.EncodeToString(make([]byte, 32))
	b, err = ParseKey(b64)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	b, err = ParseKey("  ")
	require.NoError(t, err)
	assert.Nil(t, b)

	_, err = ParseKey("abcd")
	assert.Error(t, err)

	_, err = ParseKey("not a key!")
	assert.Error(t, err)
}
