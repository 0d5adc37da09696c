package env

import "os"

// Get reads an environment variable, falling back when it is unset or blank.
// Config loading goes through envconfig; this covers the few knobs read
// before config is parsed, such as the logger output format.
func Get(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
