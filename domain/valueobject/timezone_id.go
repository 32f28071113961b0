package valueobject

import (
	"fmt"
	"time"
)

// TimezoneID represents a validated IANA timezone identifier
// (e.g. "US/Eastern", "Europe/Paris", "UTC")
type TimezoneID struct {
	name     string
	location *time.Location
}

// NewTimezoneID creates a TimezoneID from an identifier string, validating
// it against the timezone rule database. Invalid identifiers are rejected,
// never silently substituted.
func NewTimezoneID(name string) (TimezoneID, error) {
	if name == "" {
		return TimezoneID{}, fmt.Errorf("timezone identifier cannot be empty")
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return TimezoneID{}, fmt.Errorf("invalid timezone identifier %q: %w", name, err)
	}

	return TimezoneID{
		name:     name,
		location: loc,
	}, nil
}

// MustTimezoneID creates a TimezoneID and panics on an invalid identifier.
// Intended for fixed tables and tests.
func MustTimezoneID(name string) TimezoneID {
	id, err := NewTimezoneID(name)
	if err != nil {
		panic(err)
	}
	return id
}

// Name returns the identifier string
func (t TimezoneID) Name() string {
	return t.name
}

// String implements fmt.Stringer
func (t TimezoneID) String() string {
	return t.name
}

// Location returns the timezone rule data for this identifier
func (t TimezoneID) Location() *time.Location {
	return t.location
}

// IsZero reports whether this is the zero value (no identifier)
func (t TimezoneID) IsZero() bool {
	return t.name == ""
}

// Equals checks if two TimezoneIDs name the same zone
func (t TimezoneID) Equals(other TimezoneID) bool {
	return t.name == other.name
}
