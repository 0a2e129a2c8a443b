package share

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRejectsUnknownTTL(t *testing.T) {
	svc := NewService(nil, nil, 10)

	_, err := svc.Create(context.Background(), "user-1", []byte(`{}`), "forever")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}

func TestNewServiceRaisesShortCodeLength(t *testing.T) {
	svc := NewService(nil, nil, 3)
	assert.Equal(t, 6, svc.codeLength)

	svc = NewService(nil, nil, 12)
	assert.Equal(t, 12, svc.codeLength)
}

func TestNewCode(t *testing.T) {
	svc := NewService(nil, nil, 10)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := svc.newCode()
		require.NoError(t, err)
		assert.Len(t, code, 10)
		for _, c := range code {
			assert.Contains(t, codeAlphabet, string(c))
		}
		seen[code] = true
	}

	// Random codes should not collide across a handful of draws
	assert.Greater(t, len(seen), 45)
}

func TestTTLNames(t *testing.T) {
	for _, name := range []string{"1h", "24h", "7d", "30d"} {
		_, ok := TTLs[name]
		assert.True(t, ok, "ttl %s", name)
	}
}
