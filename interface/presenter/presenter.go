package presenter

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// ConsolePresenter handles console output formatting
type ConsolePresenter interface {
	// Version and basic output
	PrintVersion()
	PrintError(err error)
	PrintStringList(title string, items []string) error

	// Conversion output
	PrintConversion(result *entity.ConversionResult) error

	// Scheduling output
	PrintMeetingSlots(slots []entity.MeetingSlot, window entity.BusinessWindow) error
	PrintOverlapReport(report *entity.OverlapReport) error

	// Cache and environment output
	PrintCacheStats(stats *repository.CacheStats) error
	PrintTimezoneInfo(info repository.TimezoneInfo) error
}

// JSONPresenter handles JSON output formatting
type JSONPresenter interface {
	PrintConversion(result *entity.ConversionResult) error
	PrintMeetingSlots(slots []entity.MeetingSlot, window entity.BusinessWindow) error
	PrintOverlapReport(report *entity.OverlapReport) error
	PrintCacheStats(stats *repository.CacheStats) error
}
