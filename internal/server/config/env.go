package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. The server
// entrypoint loads a .env file first, so deployments can keep the DSN and
// secret out of the command line.
//
// Recognized variables:
//
//	ADDRESS                        HTTP bind address (e.g., ":8000")
//	DATABASE_DSN                   PostgreSQL DSN
//	SECRET_KEY                     JWT HMAC secret key
//	ACCESS_TOKEN_VALIDITY_MINUTES  access token validity, minutes
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY_MINUTES"); ok {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
	}
}
