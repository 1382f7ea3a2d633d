package cache

import "time"

// Volatilizer is the interface for the short-lived key/value store backing
// the signing-grant ledger.
type Volatilizer interface {
	// Get returns the value for key or an error when absent.
	Get(key string) (string, error)
	// SetTTL stores value under key expiring after ttl.
	SetTTL(key, value string, ttl time.Duration) error
	// Consume returns the value for key and removes it in the same
	// operation, so a grant can be honored at most once.
	Consume(key string) (string, error)
}
