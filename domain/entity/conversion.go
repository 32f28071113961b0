package entity

import (
	"fmt"
	"time"

	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

// ZonedInstant is an absolute point in time paired with its wall-clock
// representation in one specific timezone. The offset is always the one
// the zone's rules prescribe for that instant.
type ZonedInstant struct {
	Zone valueobject.TimezoneID
	Time time.Time
}

// NewZonedInstant creates a ZonedInstant, converting t into the zone
func NewZonedInstant(zone valueobject.TimezoneID, t time.Time) ZonedInstant {
	return ZonedInstant{
		Zone: zone,
		Time: t.In(zone.Location()),
	}
}

// Rendered returns the wall-clock rendering, e.g. "2025-06-21 14:30:00 EDT"
func (z ZonedInstant) Rendered() string {
	return z.Time.Format("2006-01-02 15:04:05 MST")
}

// OffsetString returns the UTC offset as "+hhmm" / "-hhmm"
func (z ZonedInstant) OffsetString() string {
	return z.Time.Format("-0700")
}

// OffsetSeconds returns the UTC offset in seconds
func (z ZonedInstant) OffsetSeconds() int {
	_, offset := z.Time.Zone()
	return offset
}

// Hour returns the local hour of day (0-23)
func (z ZonedInstant) Hour() int {
	return z.Time.Hour()
}

// RelativeDiffSource is the sentinel phrase on the source entry of a
// conversion result; target entries carry a computed phrase instead.
const RelativeDiffSource = "local time"

// ConversionEntry is one row of a conversion result
type ConversionEntry struct {
	Instant      ZonedInstant
	IsSource     bool
	RelativeDiff string
}

// ConversionResult is the outcome of converting one source instant into a
// list of target timezones. The source entry is explicit and targets keep
// caller order; there is no map to iterate and no flag to scan for.
type ConversionResult struct {
	Source  ConversionEntry
	Targets []ConversionEntry
}

// NewConversionResult creates a result with the given source entry
func NewConversionResult(source ZonedInstant) *ConversionResult {
	return &ConversionResult{
		Source: ConversionEntry{
			Instant:      source,
			IsSource:     true,
			RelativeDiff: RelativeDiffSource,
		},
	}
}

// AddTarget appends a target entry, computing its relative phrase from
// the rounded offset delta against the source
func (r *ConversionResult) AddTarget(target ZonedInstant) {
	r.Targets = append(r.Targets, ConversionEntry{
		Instant:      target,
		RelativeDiff: RelativePhrase(r.Source.Instant.OffsetSeconds(), target.OffsetSeconds()),
	})
}

// Entries returns all entries, source first, then targets in order
func (r *ConversionResult) Entries() []ConversionEntry {
	entries := make([]ConversionEntry, 0, len(r.Targets)+1)
	entries = append(entries, r.Source)
	entries = append(entries, r.Targets...)
	return entries
}

// SourceZone returns the source timezone identifier
func (r *ConversionResult) SourceZone() valueobject.TimezoneID {
	return r.Source.Instant.Zone
}

// RelativePhrase renders the signed hour difference between two UTC
// offsets as a human-readable phrase. The delta is the rounded offset
// difference, not a wall-clock subtraction, so it stays correct across
// daylight-saving boundaries and for half-hour zones.
func RelativePhrase(sourceOffsetSec, targetOffsetSec int) string {
	diffHours := roundHours(targetOffsetSec - sourceOffsetSec)

	switch {
	case diffHours == 0:
		return "same time"
	case diffHours > 0:
		return fmt.Sprintf("%d %s ahead", diffHours, pluralHour(diffHours))
	default:
		return fmt.Sprintf("%d %s behind", -diffHours, pluralHour(-diffHours))
	}
}

func roundHours(seconds int) int {
	const hour = 3600
	if seconds >= 0 {
		return (seconds + hour/2) / hour
	}
	return -((-seconds + hour/2) / hour)
}

func pluralHour(n int) string {
	if n == 1 {
		return "hour"
	}
	return "hours"
}
