package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/flagx"
)

var serverFlags = []string{
	"-a", "-l", "-n", "-D", "-d", "-m", "-R", "-U", "-s", "-A", "-t", "-r", "-o", "-w",
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-l string   HTTP bind address (e.g., "127.0.0.1:8000")
//	-n string   environment name
//	-D string   storage driver: postgres, sqlite, mongo, memory
//	-d string   database DSN (postgres, sqlite)
//	-m string   MongoDB URI
//	-R string   Redis URL for the access-token denylist
//	-U string   user management service base URL
//	-s string   signing secret (HMAC key or PEM Ed25519 key)
//	-A string   signing algorithm
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-o bool     rotate refresh tokens on refresh
//	-w int      expired token sweep interval, minutes (0 disables)
//
// Notes:
//   - os.Args is filtered with flagx.FilterArgs so -c/-config and -E/-env,
//     which are parsed elsewhere, do not collide.
//   - Duration flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	parseFlagArgs(config, os.Args[1:])
}

func parseFlagArgs(config *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.Environment, "n", config.Environment, "environment name")
	fs.StringVar(&config.StorageDriver, "D", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.RedisURL, "R", config.RedisURL, "Redis URL")
	fs.StringVar(&config.UserManagementURL, "U", config.UserManagementURL, "user management service URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.SigningAlgorithm, "A", config.SigningAlgorithm, "signing algorithm")
	fs.BoolVar(&config.RotateRefreshTokens, "o", config.RotateRefreshTokens, "rotate refresh tokens")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")
	sweepInterval := fs.Int("w", int(config.SweepInterval.Minutes()), "sweep interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
	config.SweepInterval = time.Duration(*sweepInterval) * time.Minute
}
