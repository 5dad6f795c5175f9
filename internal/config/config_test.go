package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.Addr)
	assert.Equal(t, BackendPostgres, s.Backend)
	assert.Equal(t, int64(60*60*24*30), s.MaxTTLSeconds)
	assert.Equal(t, int64(1024*1024), s.MaxContentSize)
	assert.Equal(t, "nanoid", s.IDFormat)
}

func TestLoadFlags(t *testing.T) {
	s, err := Load([]string{
		"-addr", ":9090",
		"-backend", "bolt",
		"-boltPath", "/tmp/pastes.db",
		"-maxViews", "5",
		"-rateLimit", "2.5",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", s.Addr)
	assert.Equal(t, BackendBolt, s.Backend)
	assert.Equal(t, "/tmp/pastes.db", s.BoltPath)
	assert.Equal(t, int64(5), s.MaxViewsCap)
	assert.Equal(t, 2.5, s.RateLimit)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"-backend", "cassandra"}},
		{"empty bolt path", []string{"-backend", "bolt", "-boltPath", ""}},
		{"negative max views", []string{"-maxViews", "-1"}},
		{"zero data size", []string{"-maxDataSize", "0"}},
		{"negative rate limit", []string{"-rateLimit", "-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.args)
			assert.Error(t, err)
		})
	}
}

func TestGetConnectionString(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://example/db")
	assert.Equal(t, "postgres://example/db", GetConnectionString("fallback"))

	t.Setenv("POSTGRES_URL", "")
	assert.Equal(t, "fallback", GetConnectionString("fallback"))
}
