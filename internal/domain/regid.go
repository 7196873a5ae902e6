package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NextRegistrationID returns the ID that follows last. A well formed last ID
// (PREFIX-NNNN) has its numeric suffix incremented and padded to four digits.
// An empty or malformed last ID starts a new sequence for the year of now,
// e.g. DWR-2601.
func NextRegistrationID(prefix, last string, now time.Time) string {
	parts := strings.Split(last, "-")
	if len(parts) == 2 && parts[1] != "" {
		if n, err := strconv.Atoi(parts[1]); err == nil && n >= 0 {
			return fmt.Sprintf("%s-%04d", prefix, n+1)
		}
	}
	return fmt.Sprintf("%s-%02d01", prefix, now.Year()%100)
}
