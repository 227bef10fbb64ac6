package model

import (
	"strconv"
	"time"
)

// FetchTimestampField is merged into every successfully fetched
// document. Set once, never rewritten.
const FetchTimestampField = "fetch_timestamp"

// WeatherRecord is the upstream weather document. The service treats it
// as opaque and persists it verbatim, apart from the handful of fields
// the accessors below read.
type WeatherRecord map[string]any

// StampFetchTime merges the fetch timestamp into the record as an
// ISO-8601 string.
func (r WeatherRecord) StampFetchTime(now time.Time) {
	r[FetchTimestampField] = now.Format(time.RFC3339)
}

// Cod returns the upstream status code field as a string. OpenWeather
// is inconsistent about the type: errors carry a string ("404"),
// successes a number (200).
func (r WeatherRecord) Cod() string {
	switch v := r["cod"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Temperature returns main.temp, or 0 when absent.
func (r WeatherRecord) Temperature() float64 {
	main, ok := r["main"].(map[string]any)
	if !ok {
		return 0
	}
	temp, ok := main["temp"].(float64)
	if !ok {
		return 0
	}
	return temp
}

// Condition returns the first weather entry's description, or
// "Unknown" when absent.
func (r WeatherRecord) Condition() string {
	entries, ok := r["weather"].([]any)
	if !ok || len(entries) == 0 {
		return "Unknown"
	}
	first, ok := entries[0].(map[string]any)
	if !ok {
		return "Unknown"
	}
	description, ok := first["description"].(string)
	if !ok || description == "" {
		return "Unknown"
	}
	return description
}
