package repository

import (
	"time"

	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

// TimezoneService defines the interface for timezone rule database access
type TimezoneService interface {
	// Resolve validates an identifier against the timezone database and
	// returns it as a TimezoneID. Shortcut aliases are not applied here;
	// callers resolve those first.
	Resolve(identifier string) (valueobject.TimezoneID, error)

	// GetUserTimezone returns the user's local timezone
	GetUserTimezone() (*time.Location, error)

	// Today returns the current date at midnight in the user's timezone,
	// used when time text is supplied without a date
	Today() time.Time

	// GetTimezoneInfo returns timezone information for logging
	GetTimezoneInfo() TimezoneInfo
}

// TimezoneInfo contains timezone information for logging
type TimezoneInfo struct {
	// Name is the timezone name (e.g., "America/New_York", "Asia/Tokyo")
	Name string

	// Offset is the UTC offset in the format "+09:00" or "-05:00"
	Offset string

	// OffsetSeconds is the offset from UTC in seconds
	OffsetSeconds int

	// IsDST indicates whether daylight saving time is currently active
	IsDST bool

	// DetectionMethod indicates how the timezone was determined
	// Values: "system", "fallback"
	DetectionMethod string
}
