// Package settings holds the small helpers every configuration section uses
// to apply defaults, merge TOML overlays, and read environment overrides.
//
// Sections finalize against an environment prefix: a section finalized with
// prefix "SSMA_DB" reads its host from SSMA_DB_HOST.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Key joins prefix and name with an underscore. An empty prefix yields
// an empty key, which the readers below skip, so sections finalized
// without a prefix ignore the environment.
func Key(prefix, name string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "_" + name
}

// Default sets *dst to def when *dst is the zero value.
func Default[T comparable](dst *T, def T) {
	var zero T
	if *dst == zero {
		*dst = def
	}
}

// Overlay sets *dst to v when v is not the zero value.
func Overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// OverlaySlice replaces *dst with v when v is non-nil. An explicit empty
// list in an overlay file clears the base value.
func OverlaySlice[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

func lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v := os.Getenv(key)
	return v, v != ""
}

// String overrides *dst with the value of key when set.
func String[T ~string](dst *T, key string) {
	if v, ok := lookup(key); ok {
		*dst = T(v)
	}
}

// Int overrides *dst with the integer value of key. Unparseable values are ignored.
func Int[T ~int | ~int32 | ~int64](dst *T, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
		*dst = T(n)
	}
}

// Bool overrides *dst with the boolean value of key. Unparseable values are ignored.
func Bool(dst *bool, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
		*dst = b
	}
}

// List overrides *dst with the comma separated values of key.
// Blank entries are dropped.
func List[T ~string](dst *[]T, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	parts := strings.Split(v, ",")
	out := make([]T, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, T(trimmed))
		}
	}
	*dst = out
}

// Duration parses value, returning zero for an empty or invalid duration.
// Sections validate their durations with CheckDuration during Finalize.
func Duration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}

// CheckDuration reports an error naming field when value is not a valid duration.
func CheckDuration(field, value string) error {
	if _, err := time.ParseDuration(value); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}
