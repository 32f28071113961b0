package presenter

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// JSONPresenterImpl implements JSONPresenter for machine-readable output
type JSONPresenterImpl struct {
	writer io.Writer
}

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter() *JSONPresenterImpl {
	return &JSONPresenterImpl{
		writer: os.Stdout,
	}
}

type conversionEntryJSON struct {
	Timezone  string `json:"timezone"`
	LocalTime string `json:"local_time"`
	UTCOffset string `json:"utc_offset"`
	Relative  string `json:"relative"`
	IsSource  bool   `json:"is_source"`
}

type conversionJSON struct {
	Source  string                `json:"source_timezone"`
	Entries []conversionEntryJSON `json:"entries"`
}

// PrintConversion prints a conversion result as JSON
func (p *JSONPresenterImpl) PrintConversion(result *entity.ConversionResult) error {
	out := conversionJSON{Source: result.SourceZone().Name()}
	for _, e := range result.Entries() {
		out.Entries = append(out.Entries, conversionEntryJSON{
			Timezone:  e.Instant.Zone.Name(),
			LocalTime: e.Instant.Rendered(),
			UTCOffset: e.Instant.OffsetString(),
			Relative:  e.RelativeDiff,
			IsSource:  e.IsSource,
		})
	}
	return p.print(out)
}

type partyTimeJSON struct {
	Label     string `json:"label"`
	Timezone  string `json:"timezone"`
	LocalTime string `json:"local_time"`
}

type meetingSlotJSON struct {
	UTC     string          `json:"utc"`
	Parties []partyTimeJSON `json:"parties"`
}

type meetingSlotsJSON struct {
	Window string            `json:"business_window"`
	Slots  []meetingSlotJSON `json:"slots"`
}

// PrintMeetingSlots prints suggested meeting times as JSON
func (p *JSONPresenterImpl) PrintMeetingSlots(slots []entity.MeetingSlot, window entity.BusinessWindow) error {
	out := meetingSlotsJSON{Window: window.String(), Slots: []meetingSlotJSON{}}
	for _, slot := range slots {
		s := meetingSlotJSON{UTC: slot.UTC.Format(time.RFC3339)}
		for _, pt := range slot.PartyTimes {
			s.Parties = append(s.Parties, partyTimeJSON{
				Label:     pt.Party.Label,
				Timezone:  pt.Party.Zone.Name(),
				LocalTime: pt.Local.Rendered(),
			})
		}
		out.Slots = append(out.Slots, s)
	}
	return p.print(out)
}

type overlapHourJSON struct {
	UTCHour int             `json:"utc_hour"`
	Parties []partyTimeJSON `json:"parties"`
}

type overlapJSON struct {
	Window         string            `json:"business_window"`
	Parties        []string          `json:"parties"`
	OverlapHours   int               `json:"overlap_hours"`
	Hours          []overlapHourJSON `json:"hours"`
	Recommendation string            `json:"recommendation"`
	Advice         string            `json:"advice"`
}

// PrintOverlapReport prints the overlap analysis as JSON
func (p *JSONPresenterImpl) PrintOverlapReport(report *entity.OverlapReport) error {
	out := overlapJSON{
		Window:         report.Window.String(),
		OverlapHours:   report.TotalOverlap(),
		Hours:          []overlapHourJSON{},
		Recommendation: string(report.Recommendation()),
		Advice:         report.Recommendation().Advice(),
	}
	for _, party := range report.Parties {
		out.Parties = append(out.Parties, party.Zone.Name())
	}
	for _, hour := range report.Hours {
		h := overlapHourJSON{UTCHour: hour.UTCHour}
		for _, pt := range hour.PartyTimes {
			h.Parties = append(h.Parties, partyTimeJSON{
				Label:     pt.Party.Label,
				Timezone:  pt.Party.Zone.Name(),
				LocalTime: pt.Local.Rendered(),
			})
		}
		out.Hours = append(out.Hours, h)
	}
	return p.print(out)
}

type cacheStatsJSON struct {
	CachedLocations int    `json:"cached_locations"`
	HistoryCount    int    `json:"history_count"`
	Path            string `json:"path,omitempty"`
}

// PrintCacheStats prints cache statistics as JSON
func (p *JSONPresenterImpl) PrintCacheStats(stats *repository.CacheStats) error {
	return p.print(cacheStatsJSON{
		CachedLocations: stats.CachedLocations,
		HistoryCount:    stats.HistoryCount,
		Path:            stats.Path,
	})
}

func (p *JSONPresenterImpl) print(v interface{}) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
