package repository

import (
	"encoding/json"
	"os"
	"time"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

// detailsString stores an absent payload as the empty object.
func detailsString(details json.RawMessage) string {
	if len(details) == 0 {
		return "{}"
	}
	return string(details)
}
