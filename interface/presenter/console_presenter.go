package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// ConsolePresenterImpl implements ConsolePresenter for terminal output
type ConsolePresenterImpl struct {
	writer io.Writer
}

// NewConsolePresenter creates a new console presenter
func NewConsolePresenter() *ConsolePresenterImpl {
	return &ConsolePresenterImpl{
		writer: os.Stdout,
	}
}

// PrintVersion prints version information
func (p *ConsolePresenterImpl) PrintVersion() {
	_, _ = fmt.Fprintln(p.writer, "tzbuddy version 1.0.0")
}

// PrintError prints an error message
func (p *ConsolePresenterImpl) PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintStringList prints a list of strings with a title
func (p *ConsolePresenterImpl) PrintStringList(title string, items []string) error {
	_, _ = fmt.Fprintf(p.writer, "%s:\n", title)
	for _, item := range items {
		_, _ = fmt.Fprintf(p.writer, "  - %s\n", item)
	}
	return nil
}

// PrintConversion prints a conversion result as a table
func (p *ConsolePresenterImpl) PrintConversion(result *entity.ConversionResult) error {
	_, _ = fmt.Fprintf(p.writer, "Time in %s and around the world\n", result.SourceZone().Name())
	_, _ = fmt.Fprintln(p.writer, strings.Repeat("=", 70))

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Timezone\tLocal Time\tOffset\tDifference\t\n")
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
		strings.Repeat("-", 18),
		strings.Repeat("-", 24),
		strings.Repeat("-", 6),
		strings.Repeat("-", 14))

	for _, e := range result.Entries() {
		marker := ""
		if e.IsSource {
			marker = " *"
		}
		_, _ = fmt.Fprintf(w, "%s%s\t%s (%s)\t%s\t%s\t\n",
			e.Instant.Zone.Name(),
			marker,
			e.Instant.Rendered(),
			dayPhase(e.Instant.Hour()),
			e.Instant.OffsetString(),
			e.RelativeDiff)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(p.writer)
	_, _ = fmt.Fprintln(p.writer, "Tip: * marks the source timezone")
	return nil
}

// PrintMeetingSlots prints suggested meeting times
func (p *ConsolePresenterImpl) PrintMeetingSlots(slots []entity.MeetingSlot, window entity.BusinessWindow) error {
	_, _ = fmt.Fprintf(p.writer, "Suggested meeting times (business hours %s)\n", window.String())
	_, _ = fmt.Fprintln(p.writer, strings.Repeat("=", 70))

	if len(slots) == 0 {
		_, _ = fmt.Fprintln(p.writer, "No common slots found in the search horizon.")
		return nil
	}

	for i, slot := range slots {
		_, _ = fmt.Fprintf(p.writer, "%d. %s UTC\n", i+1, slot.UTC.Format("Mon 2006-01-02 15:04"))
		for _, pt := range slot.PartyTimes {
			_, _ = fmt.Fprintf(p.writer, "   %-20s %s (%s)\n",
				pt.Party.Label,
				pt.Local.Rendered(),
				dayPhase(pt.Local.Hour()))
		}
	}
	return nil
}

// PrintOverlapReport prints the business-hours overlap analysis
func (p *ConsolePresenterImpl) PrintOverlapReport(report *entity.OverlapReport) error {
	_, _ = fmt.Fprintf(p.writer, "Business hours overlap (%s local for every party)\n", report.Window.String())
	_, _ = fmt.Fprintln(p.writer, strings.Repeat("=", 70))

	labels := make([]string, 0, len(report.Parties))
	for _, party := range report.Parties {
		labels = append(labels, fmt.Sprintf("%s (%s)", party.Label, party.Zone.Name()))
	}
	_, _ = fmt.Fprintf(p.writer, "Parties: %s\n\n", strings.Join(labels, ", "))

	if len(report.Hours) == 0 {
		_, _ = fmt.Fprintln(p.writer, "Shared working hours: none")
	} else {
		_, _ = fmt.Fprintf(p.writer, "Shared working hours: %d per day\n", report.TotalOverlap())
		w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
		for _, hour := range report.Hours {
			locals := make([]string, 0, len(hour.PartyTimes))
			for _, pt := range hour.PartyTimes {
				locals = append(locals, fmt.Sprintf("%02d:00 %s", pt.Local.Hour(), pt.Party.Label))
			}
			_, _ = fmt.Fprintf(w, "  %02d:00 UTC\t%s\t\n", hour.UTCHour, strings.Join(locals, "  "))
		}
		_ = w.Flush()
	}

	_, _ = fmt.Fprintln(p.writer)
	_, _ = fmt.Fprintf(p.writer, "Recommendation: %s\n", report.Recommendation().Advice())
	return nil
}

// PrintCacheStats prints location cache statistics
func (p *ConsolePresenterImpl) PrintCacheStats(stats *repository.CacheStats) error {
	_, _ = fmt.Fprintln(p.writer, "Location cache")
	_, _ = fmt.Fprintf(p.writer, "  Cached locations: %d\n", stats.CachedLocations)
	_, _ = fmt.Fprintf(p.writer, "  History entries:  %d\n", stats.HistoryCount)
	if stats.Path != "" {
		_, _ = fmt.Fprintf(p.writer, "  Database:         %s\n", stats.Path)
	}
	return nil
}

// PrintTimezoneInfo prints the detected local timezone
func (p *ConsolePresenterImpl) PrintTimezoneInfo(info repository.TimezoneInfo) error {
	dst := ""
	if info.IsDST {
		dst = ", DST"
	}
	_, _ = fmt.Fprintf(p.writer, "Local timezone: %s (UTC%s%s, detected via %s)\n",
		info.Name, info.Offset, dst, info.DetectionMethod)
	return nil
}

// dayPhase maps an hour of day to a coarse label for quick scanning
func dayPhase(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
