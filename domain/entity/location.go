package entity

import (
	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

// LocationInfo is a geocoded location: the resolved display address and
// its coordinates
type LocationInfo struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// NewLocationInfo creates a LocationInfo
func NewLocationInfo(address string, latitude, longitude float64) LocationInfo {
	return LocationInfo{
		Address:   address,
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// ResolvedLocation is a user query resolved to a timezone, either through
// the shortcut table or through geocoding plus reverse timezone lookup
type ResolvedLocation struct {
	Query        string
	Info         LocationInfo
	Zone         valueobject.TimezoneID
	FromShortcut bool
	FromCache    bool
}
