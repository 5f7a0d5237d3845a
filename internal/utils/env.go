package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the process environment. A missing
// file is not an error; production deployments set real env vars.
func LoadEnv() error {
	_ = godotenv.Load()
	return nil
}

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt is GetEnv for integer variables; unparsable values fall
// back to the default.
func GetEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
