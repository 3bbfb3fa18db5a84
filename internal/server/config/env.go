package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/tokenkeeper/internal/flagx"
)

const defaultEnvFile = ".env"

// parseEnv loads an optional dotenv file (-E/-env, or ./.env when present)
// into the process environment and then overlays recognised variables onto
// config. Variables already set in the environment take precedence over the
// file. Unparsable values panic, like flag errors.
func parseEnv(config *Config) {
	loadEnvFile(flagx.EnvFileFlags())
	applyEnv(config, os.LookupEnv)
}

func loadEnvFile(path string) {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

func applyEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	minutes := func(name string, dst *time.Duration) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
		*dst = time.Duration(n) * time.Minute
	}

	str("SECRET_KEY", &config.SecretKey)
	str("ALGORITHM", &config.SigningAlgorithm)
	str("ENVIRONMENT", &config.Environment)
	str("STORAGE_DRIVER", &config.StorageDriver)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("MONGODB_URI", &config.MongoURI)
	str("MONGODB_DATABASE", &config.MongoDatabase)
	str("REDIS_URL", &config.RedisURL)
	str("USER_MANAGEMENT_SERVICE_URL", &config.UserManagementURL)
	str("GRPC_ADDRESS", &config.EndpointAddrGRPC)

	minutes("ACCESS_TOKEN_EXPIRE_MINUTES", &config.AccessTokenValidityDuration)
	minutes("REFRESH_TOKEN_EXPIRE_MINUTES", &config.RefreshTokenValidityDuration)
	minutes("SWEEP_INTERVAL_MINUTES", &config.SweepInterval)

	if v, ok := lookup("ROTATE_REFRESH_TOKENS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("ROTATE_REFRESH_TOKENS: %w", err))
		}
		config.RotateRefreshTokens = b
	}

	host, port, err := net.SplitHostPort(config.EndpointAddrHTTP)
	if err != nil {
		host, port = config.EndpointAddrHTTP, ""
	}
	hostSet, portSet := false, false
	if v, ok := lookup("HOST"); ok && v != "" {
		host, hostSet = v, true
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, portSet = v, true
	}
	if hostSet || portSet {
		config.EndpointAddrHTTP = net.JoinHostPort(host, port)
	}
}
