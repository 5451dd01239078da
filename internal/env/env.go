package env

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the value of k, or def when unset or blank.
func Get(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func GetInt(k string, def int) int {
	v := Get(k, "")
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("env: not an int, using default", "key", k, "value", v, "default", def)
		return def
	}
	return i
}

func GetFloat(k string, def float64) float64 {
	v := Get(k, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("env: not a number, using default", "key", k, "value", v, "default", def)
		return def
	}
	return f
}

func GetBool(k string, def bool) bool {
	v := Get(k, "")
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		slog.Warn("env: not a bool, using default", "key", k, "value", v, "default", def)
		return def
	}
}

// GetDuration accepts Go duration syntax or a bare number of seconds.
func GetDuration(k string, def time.Duration) time.Duration {
	v := Get(k, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	slog.Warn("env: not a duration, using default", "key", k, "value", v, "default", def)
	return def
}

// GetList splits a comma/semicolon/whitespace separated value.
func GetList(k string, def []string) []string {
	v := Get(k, "")
	if v == "" {
		return def
	}
	fields := strings.FieldsFunc(v, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r', '\t', ' ':
			return true
		default:
			return false
		}
	})
	if len(fields) == 0 {
		return def
	}
	return fields
}
