package util

import (
	"fmt"
	"os"
	"strconv"
)

func Getenv(name, defaultValue string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetenvInt(name string, defaultValue int) (int, error) {
	valueStr, ok := os.LookupEnv(name)
	if !ok || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid value for %s (%s): %w", name, valueStr, err)
	}
	return value, nil
}
