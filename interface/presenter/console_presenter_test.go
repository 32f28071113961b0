package presenter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

func buildResult(t *testing.T) *entity.ConversionResult {
	t.Helper()
	eastern, err := valueobject.NewTimezoneID("US/Eastern")
	require.NoError(t, err)
	tokyo, err := valueobject.NewTimezoneID("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2025, 6, 21, 18, 30, 0, 0, time.UTC)
	result := entity.NewConversionResult(entity.NewZonedInstant(eastern, instant))
	result.AddTarget(entity.NewZonedInstant(tokyo, instant))
	return result
}

func TestPrintConversion(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePresenterImpl{writer: &buf}

	require.NoError(t, p.PrintConversion(buildResult(t)))

	out := buf.String()
	assert.Contains(t, out, "Time in US/Eastern")
	assert.Contains(t, out, "US/Eastern *")
	assert.Contains(t, out, "2025-06-21 14:30:00 EDT")
	assert.Contains(t, out, "local time")
	assert.Contains(t, out, "Asia/Tokyo")
	assert.Contains(t, out, "13 hours ahead")
	assert.Contains(t, out, "* marks the source timezone")
}

func TestPrintMeetingSlotsEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePresenterImpl{writer: &buf}

	window, err := entity.NewBusinessWindow(9, 17)
	require.NoError(t, err)
	require.NoError(t, p.PrintMeetingSlots(nil, window))
	assert.Contains(t, buf.String(), "No common slots found")
}

func TestPrintMeetingSlots(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePresenterImpl{writer: &buf}

	zone, err := valueobject.NewTimezoneID("UTC")
	require.NoError(t, err)
	party := entity.NewLocationParty("alice", zone)
	utc := time.Date(2025, 6, 21, 9, 0, 0, 0, time.UTC)
	slot := entity.MeetingSlot{
		UTC: utc,
		PartyTimes: []entity.PartyTime{{
			Party:        party,
			Local:        entity.NewZonedInstant(zone, utc),
			WithinWindow: true,
		}},
	}

	window, err := entity.NewBusinessWindow(9, 17)
	require.NoError(t, err)
	require.NoError(t, p.PrintMeetingSlots([]entity.MeetingSlot{slot}, window))

	out := buf.String()
	assert.Contains(t, out, "business hours 09:00-17:00")
	assert.Contains(t, out, "1. Sat 2025-06-21 09:00 UTC")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "morning")
}

func TestPrintOverlapReportNoOverlap(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePresenterImpl{writer: &buf}

	zone, err := valueobject.NewTimezoneID("UTC")
	require.NoError(t, err)
	window, err := entity.NewBusinessWindow(9, 17)
	require.NoError(t, err)

	report := &entity.OverlapReport{
		Parties: []entity.LocationParty{entity.NewLocationParty("a", zone), entity.NewLocationParty("b", zone)},
		Window:  window,
	}
	require.NoError(t, p.PrintOverlapReport(report))

	out := buf.String()
	assert.Contains(t, out, "Shared working hours: none")
	assert.Contains(t, out, "async communication recommended")
}

func TestPrintCacheStats(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePresenterImpl{writer: &buf}

	require.NoError(t, p.PrintCacheStats(&repository.CacheStats{
		CachedLocations: 3,
		HistoryCount:    5,
		Path:            "/tmp/tzbuddy.db",
	}))

	out := buf.String()
	assert.Contains(t, out, "Cached locations: 3")
	assert.Contains(t, out, "History entries:  5")
	assert.Contains(t, out, "/tmp/tzbuddy.db")
}

func TestDayPhase(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{20, "evening"},
		{21, "night"},
		{0, "night"},
		{4, "night"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dayPhase(tt.hour), "hour %d", tt.hour)
	}
}

func TestPrintTimezoneInfo(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsolePresenterImpl{writer: &buf}

	require.NoError(t, p.PrintTimezoneInfo(repository.TimezoneInfo{
		Name:            "Asia/Tokyo",
		Offset:          "+09:00",
		IsDST:           false,
		DetectionMethod: "system",
	}))
	assert.True(t, strings.Contains(buf.String(), "Asia/Tokyo (UTC+09:00, detected via system)"))
}
