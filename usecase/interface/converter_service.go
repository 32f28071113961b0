package usecase

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
)

// ConverterService defines the interface for timezone conversion use cases
type ConverterService interface {
	// ConvertCurrent converts the current moment in the source timezone
	// to every target timezone. The source accepts shortcuts.
	ConvertCurrent(source string, targets []string) (*entity.ConversionResult, error)

	// ConvertAt converts a specific wall-clock time in the source
	// timezone. An empty dateText means today. Targets default to the
	// configured major timezone list when empty.
	ConvertAt(source string, timeText string, dateText string, targets []string) (*entity.ConversionResult, error)

	// ResolveShortcut expands a timezone shortcut to its IANA name,
	// returning the input unchanged when it is not a shortcut
	ResolveShortcut(identifier string) string

	// Shortcuts returns all known shortcut aliases, sorted
	Shortcuts() []string
}
