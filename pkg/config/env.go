package config

import (
	"os"
	"strings"
)

// IsEnvSet checks if an environment variable is set to a non-blank value.
func IsEnvSet(key string) bool {
	return strings.TrimSpace(os.Getenv(key)) != ""
}

// Presence reports which of keys are set, without exposing their values.
func Presence(keys ...string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = IsEnvSet(k)
	}
	return out
}

// SplitList splits a comma separated setting, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
