package env

import "os"

// Prefix namespaces the florist settings; the prefixed key wins over the bare one.
const Prefix = "FLORIST_"

// Get returns FLORIST_<key>, then <key>, then the fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(Prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
