package impl

import (
	"context"
	"time"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// ConverterServiceImpl implements the ConverterService interface
type ConverterServiceImpl struct {
	timezoneService repository.TimezoneService
	configService   usecase.ConfigService
	shortcuts       valueobject.ShortcutTable
	logger          domain.Logger
	now             func() time.Time
}

// NewConverterService creates a new ConverterService
func NewConverterService(
	timezoneService repository.TimezoneService,
	configService usecase.ConfigService,
	logger domain.Logger,
) usecase.ConverterService {
	return &ConverterServiceImpl{
		timezoneService: timezoneService,
		configService:   configService,
		shortcuts:       valueobject.DefaultShortcutTable(),
		logger:          logger,
		now:             time.Now,
	}
}

// ConvertCurrent converts the current moment in the source timezone to
// every target timezone
func (s *ConverterServiceImpl) ConvertCurrent(source string, targets []string) (*entity.ConversionResult, error) {
	sourceZone, err := s.resolveZone(source)
	if err != nil {
		return nil, err
	}

	return s.convert(sourceZone, s.now(), targets)
}

// ConvertAt converts a specific wall-clock time in the source timezone.
// The time text is interpreted as local time in the source zone.
func (s *ConverterServiceImpl) ConvertAt(source, timeText, dateText string, targets []string) (*entity.ConversionResult, error) {
	sourceZone, err := s.resolveZone(source)
	if err != nil {
		return nil, err
	}

	naive, err := valueobject.ParseNaiveDateTime(timeText, dateText, s.timezoneService.Today())
	if err != nil {
		return nil, err
	}

	return s.convert(sourceZone, naive.In(sourceZone.Location()), targets)
}

// ResolveShortcut expands a timezone shortcut, passing unknown input
// through unchanged
func (s *ConverterServiceImpl) ResolveShortcut(identifier string) string {
	return s.shortcuts.Resolve(identifier)
}

// Shortcuts returns all known shortcut aliases, sorted
func (s *ConverterServiceImpl) Shortcuts() []string {
	return s.shortcuts.Aliases()
}

// convert builds the conversion result for an absolute instant
func (s *ConverterServiceImpl) convert(sourceZone valueobject.TimezoneID, instant time.Time, targets []string) (*entity.ConversionResult, error) {
	if len(targets) == 0 {
		targets = s.configService.GetConfig().Conversion.MajorTimezoneList()
	}

	result := entity.NewConversionResult(entity.NewZonedInstant(sourceZone, instant))

	for _, target := range targets {
		targetZone, err := s.resolveZone(target)
		if err != nil {
			return nil, err
		}

		// The source zone never repeats in the target list
		if targetZone.Equals(sourceZone) {
			continue
		}

		result.AddTarget(entity.NewZonedInstant(targetZone, instant))
	}

	s.logger.Debug(context.Background(), "Converted timezone",
		domain.NewField("source", sourceZone.Name()),
		domain.NewField("targets", len(result.Entries())-1))

	return result, nil
}

// resolveZone applies the shortcut table then validates against the
// timezone database
func (s *ConverterServiceImpl) resolveZone(identifier string) (valueobject.TimezoneID, error) {
	return s.timezoneService.Resolve(s.shortcuts.Resolve(identifier))
}
