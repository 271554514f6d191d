package timezone

import (
	"os"
	"time"
)

// Shop timezone for interpreting date-only inputs (availability queries,
// staff day listings). Booking instants themselves travel as RFC 3339.
func Location() *time.Location {
	if tz := os.Getenv("SHOP_TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location())
}
