package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewID returns a new identifier: the creation time in milliseconds
// plus a random tie-breaker so bulk creation within the same
// millisecond cannot collide.
func NewID(now time.Time) string {
	return fmt.Sprintf("%d-%04d", now.UnixMilli(), rand.IntN(10000))
}
