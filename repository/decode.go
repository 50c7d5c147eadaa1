package repository

import (
	"encoding/json"
	"strconv"
)

// Decode helpers tolerant of the loose typing in the historical JSON files,
// where ids were written both as strings and as bare numbers. Numbers arrive
// as json.Number from the store; they are never converted through float64,
// which would round Discord snowflakes (they exceed 2^53).

func decodeString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func decodeInt(value any, fallback int) int {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
		return fallback
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return fallback
	default:
		return fallback
	}
}

func decodeStringSlice(value any) []string {
	result := []string{}
	items, ok := value.([]any)
	if !ok {
		// Already-decoded slices pass through untouched.
		if strs, ok := value.([]string); ok {
			return strs
		}
		return result
	}
	for _, item := range items {
		if s := decodeString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
