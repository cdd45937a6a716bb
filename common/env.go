package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env if present. A missing file is not an error: production
// deployments configure through real environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		SysLog("no .env file loaded: " + err.Error())
	}
}

func GetEnvString(key string, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		SysError(fmt.Sprintf("invalid int value %q for %s, using default %d", v, key, defaultValue))
		return defaultValue
	}
	return n
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		SysError(fmt.Sprintf("invalid float value %q for %s, using default %v", v, key, defaultValue))
		return defaultValue
	}
	return f
}

func GetEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
