package redisx

import "time"

const (
	// Cart per session: cart:{session_id} -> JSON item array
	KeyCart = "cart:%s"

	// One-shot flash message per session: flash:{session_id}
	KeyFlash = "flash:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// TTLCart tracks the session cookie lifetime; refreshed on save.
	TTLCart  = 7 * 24 * time.Hour
	TTLFlash = 10 * time.Minute
	TTLDedup = 48 * time.Hour
)
