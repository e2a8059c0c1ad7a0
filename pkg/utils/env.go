package utils

import (
	"os"
	"strconv"
)

// Env returns the value of the environment variable named key, or def if unset or empty.
func Env(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// EnvInt returns the integer value of the environment variable named key, or def
// if unset, empty, or not parseable as a positive integer.
func EnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// EnvFloat returns the float value of the environment variable named key, or def
// if unset, empty, or not parseable.
func EnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
