package usecase

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
)

// ScheduleService defines the interface for multi-party scheduling use cases
type ScheduleService interface {
	// FindMeetingSlots scans the coming days for UTC hours where every
	// party's local time falls inside the business window, returning
	// the earliest slots in chronological order. Party identifiers
	// accept shortcuts, IANA names, and free-form locations;
	// unresolvable parties are dropped. Fewer than two resolvable
	// parties is an error.
	FindMeetingSlots(parties []string, window entity.BusinessWindow) ([]entity.MeetingSlot, error)

	// BusinessHoursOverlap reports, for each of the 24 nominal UTC
	// hours, which parties are inside the business window, along with
	// an overall recommendation
	BusinessHoursOverlap(parties []string, window entity.BusinessWindow) (*entity.OverlapReport, error)
}
