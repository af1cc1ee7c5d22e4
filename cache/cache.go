// Package cache provides a small result cache for computed projections.
// Projections are pure functions of their inputs, so a cache entry never
// goes stale for a given simulation revision; the API layer keys entries
// by simulation ID and year count and drops them on simulation update.
package cache

// Cache is a string key/value cache.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Delete(key string) error
}
