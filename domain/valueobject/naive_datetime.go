package valueobject

import (
	"fmt"
	"strings"
	"time"

	"github.com/ca-srg/tzbuddy/domain"
)

// NaiveDateTime is a calendar date and time of day with no associated
// timezone. It is attached to a zone via In.
type NaiveDateTime struct {
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
	second int
}

// Accepted input layouts, tried in order; first match wins.
var (
	timeLayouts = []string{
		"15:04",
		"15:04:05",
		"3:04 PM",
		"3:04:05 PM",
	}

	// MM/DD is tried before DD/MM, so "03/04/2025" reads as March 4.
	// Trial order is the documented disambiguation, not a locale rule.
	dateLayouts = []string{
		"2006-01-02",
		"01/02/2006",
		"02/01/2006",
		"01-02-2006",
	}

	timeFormatNames = []string{"HH:MM", "HH:MM:SS", "H:MM AM/PM", "H:MM:SS AM/PM"}
	dateFormatNames = []string{"YYYY-MM-DD", "MM/DD/YYYY", "DD/MM/YYYY", "MM-DD-YYYY"}
)

// NewNaiveDateTime creates a NaiveDateTime from calendar components
func NewNaiveDateTime(year int, month time.Month, day, hour, minute, second int) NaiveDateTime {
	return NaiveDateTime{
		year:   year,
		month:  month,
		day:    day,
		hour:   hour,
		minute: minute,
		second: second,
	}
}

// ParseNaiveDateTime parses user-supplied time text and optional date text
// against the accepted layout lists. An empty dateText uses today's date.
// Failures carry which input class (time or date) did not match.
func ParseNaiveDateTime(timeText, dateText string, today time.Time) (NaiveDateTime, error) {
	clock, err := parseTimeText(timeText)
	if err != nil {
		return NaiveDateTime{}, err
	}

	date := today
	if strings.TrimSpace(dateText) != "" {
		date, err = parseDateText(dateText)
		if err != nil {
			return NaiveDateTime{}, err
		}
	}

	year, month, day := date.Date()
	hour, minute, second := clock.Clock()
	return NewNaiveDateTime(year, month, day, hour, minute, second), nil
}

func parseTimeText(timeText string) (time.Time, error) {
	// The 12-hour layouts require an uppercase meridiem marker
	normalized := strings.ToUpper(strings.TrimSpace(timeText))
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, domain.ErrMalformedInput(domain.MalformedTime, timeText, timeFormatNames)
}

func parseDateText(dateText string) (time.Time, error) {
	trimmed := strings.TrimSpace(dateText)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, domain.ErrMalformedInput(domain.MalformedDate, dateText, dateFormatNames)
}

// Date returns the calendar date components
func (n NaiveDateTime) Date() (year int, month time.Month, day int) {
	return n.year, n.month, n.day
}

// Clock returns the time-of-day components
func (n NaiveDateTime) Clock() (hour, minute, second int) {
	return n.hour, n.minute, n.second
}

// In localizes the naive date-time into loc, selecting the UTC offset the
// zone's rules prescribe for that calendar moment (DST-aware).
func (n NaiveDateTime) In(loc *time.Location) time.Time {
	return time.Date(n.year, n.month, n.day, n.hour, n.minute, n.second, 0, loc)
}

// String renders the naive date-time as "YYYY-MM-DD HH:MM:SS"
func (n NaiveDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		n.year, int(n.month), n.day, n.hour, n.minute, n.second)
}

// Equals checks if two NaiveDateTimes name the same calendar moment
func (n NaiveDateTime) Equals(other NaiveDateTime) bool {
	return n == other
}
