package cache

import (
	"time"
)

// DefaultTTL is how long a stored identifier list stays fresh.
const DefaultTTL = 5 * time.Minute

// Snapshot is one cached copy of the upstream identifier list.
type Snapshot struct {
	// IDs are the story identifiers in upstream ranking order (newest first).
	IDs []int `json:"ids"`

	// CachedAt is when the snapshot was stored.
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the snapshot becomes stale.
	Expires time.Time `json:"expires"`
}

// IsExpired reports whether the snapshot is stale at now.
func (s *Snapshot) IsExpired(now time.Time) bool {
	return !now.Before(s.Expires)
}

// TTL returns the time left until expiration at now.
// Returns 0 if already expired.
func (s *Snapshot) TTL(now time.Time) time.Duration {
	ttl := s.Expires.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
