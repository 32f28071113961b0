package entity

import (
	"fmt"
	"time"

	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

// LocationParty pairs a user-supplied location label with its resolved
// timezone for scheduling computations
type LocationParty struct {
	Label string
	Zone  valueobject.TimezoneID
}

// NewLocationParty creates a LocationParty
func NewLocationParty(label string, zone valueobject.TimezoneID) LocationParty {
	return LocationParty{Label: label, Zone: zone}
}

// BusinessWindow is a half-open local-hour range [start, end) treated as
// working hours
type BusinessWindow struct {
	start int
	end   int
}

// NewBusinessWindow creates a BusinessWindow, enforcing 0 <= start < end <= 24
func NewBusinessWindow(start, end int) (BusinessWindow, error) {
	if start < 0 || start >= end || end > 24 {
		return BusinessWindow{}, fmt.Errorf("invalid business window [%d, %d): need 0 <= start < end <= 24", start, end)
	}
	return BusinessWindow{start: start, end: end}, nil
}

// DefaultBusinessWindow returns the conventional 9-to-17 window
func DefaultBusinessWindow() BusinessWindow {
	return BusinessWindow{start: 9, end: 17}
}

// Start returns the inclusive start hour
func (w BusinessWindow) Start() int {
	return w.start
}

// End returns the exclusive end hour
func (w BusinessWindow) End() int {
	return w.end
}

// Contains reports whether a local hour falls inside the window;
// start is included, end is excluded
func (w BusinessWindow) Contains(hour int) bool {
	return hour >= w.start && hour < w.end
}

// Hours returns the window length in hours
func (w BusinessWindow) Hours() int {
	return w.end - w.start
}

// String renders the window as "09:00-17:00"
func (w BusinessWindow) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.start, w.end)
}

// PartyTime is one party's localized view of a candidate instant
type PartyTime struct {
	Party        LocationParty
	Local        ZonedInstant
	WithinWindow bool
}

// MeetingSlot is an absolute UTC instant at which every party's local
// hour falls inside the business window
type MeetingSlot struct {
	UTC        time.Time
	PartyTimes []PartyTime
}

// OverlapHour is a nominal UTC hour of a recurring day that works for
// every party
type OverlapHour struct {
	UTCHour    int
	PartyTimes []PartyTime
}

// OverlapReport is the outcome of a business-hours overlap calculation
type OverlapReport struct {
	Parties []LocationParty
	Window  BusinessWindow
	Hours   []OverlapHour
}

// TotalOverlap returns the number of shared working hours per day
func (r *OverlapReport) TotalOverlap() int {
	return len(r.Hours)
}

// Recommendation classifies the overlap count into a coarse band
func (r *OverlapReport) Recommendation() OverlapBand {
	return ClassifyOverlap(r.TotalOverlap())
}

// OverlapBand is a coarse recommendation derived from the overlap count
type OverlapBand string

const (
	// OverlapExcellent marks 6+ shared hours
	OverlapExcellent OverlapBand = "excellent"

	// OverlapGood marks 3-5 shared hours
	OverlapGood OverlapBand = "good"

	// OverlapLimited marks 1-2 shared hours
	OverlapLimited OverlapBand = "limited"

	// OverlapNone marks no shared hours
	OverlapNone OverlapBand = "none"
)

// ClassifyOverlap maps a shared-hour count to its band
func ClassifyOverlap(hours int) OverlapBand {
	switch {
	case hours >= 6:
		return OverlapExcellent
	case hours >= 3:
		return OverlapGood
	case hours >= 1:
		return OverlapLimited
	default:
		return OverlapNone
	}
}

// Advice returns the product-level guidance for the band
func (b OverlapBand) Advice() string {
	switch b {
	case OverlapExcellent:
		return "Great overlap for real-time collaboration"
	case OverlapGood:
		return "Workable overlap; schedule important meetings in shared hours"
	case OverlapLimited:
		return "Limited overlap; flexible meeting times advised"
	default:
		return "No overlapping business hours; async communication recommended"
	}
}
