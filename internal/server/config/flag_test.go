package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:9090", "-l", "0.0.0.0:8080", "-n", "production",
			"-D", "sqlite", "-d", "tokens.db", "-m", "mongodb://mongo:27017",
			"-R", "redis://cache:6379/0", "-U", "http://users:8001", "-s", "secret",
			"-A", "HS512", "-t", "1", "-r", "3", "-w", "5", "-o",
		}, expected: &Config{
			EndpointAddrGRPC:             "127.0.0.1:9090",
			EndpointAddrHTTP:             "0.0.0.0:8080",
			Environment:                  "production",
			StorageDriver:                "sqlite",
			DatabaseDSN:                  "tokens.db",
			MongoURI:                     "mongodb://mongo:27017",
			RedisURL:                     "redis://cache:6379/0",
			UserManagementURL:            "http://users:8001",
			SecretKey:                    "secret",
			SigningAlgorithm:             "HS512",
			AccessTokenValidityDuration:  1 * time.Minute,
			RefreshTokenValidityDuration: 3 * time.Minute,
			RotateRefreshTokens:          true,
			SweepInterval:                5 * time.Minute,
		}},
		{name: "foreign flags ignored", args: []string{
			"-c", "config.json", "-E", ".env.test", "-s", "k", "-x", "y",
		}, expected: &Config{SecretKey: "k"}},
		{name: "non-numeric ttl panics", args: []string{"-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlagArgs(config, tt.args) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlagArgs(config, tt.args) })
			}
		})
	}
}
