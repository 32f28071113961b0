package impl

import (
	"context"
	"time"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// minResolvedParties is the floor for any scheduling computation
const minResolvedParties = 2

// ScheduleServiceImpl implements the ScheduleService interface
type ScheduleServiceImpl struct {
	locationService usecase.LocationService
	configService   usecase.ConfigService
	logger          domain.Logger
	now             func() time.Time
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	locationService usecase.LocationService,
	configService usecase.ConfigService,
	logger domain.Logger,
) usecase.ScheduleService {
	return &ScheduleServiceImpl{
		locationService: locationService,
		configService:   configService,
		logger:          logger,
		now:             time.Now,
	}
}

// FindMeetingSlots scans the horizon for instants where every party's
// local hour falls inside the business window. Candidate instants are
// whole UTC hours; the first qualifying hour of each day is kept, so
// the result holds at most one slot per day.
func (s *ScheduleServiceImpl) FindMeetingSlots(parties []string, window entity.BusinessWindow) ([]entity.MeetingSlot, error) {
	resolved, err := s.resolveParties(parties)
	if err != nil {
		return nil, err
	}

	scheduleCfg := s.configService.GetConfig().Schedule
	horizonDays := scheduleCfg.HorizonDays
	maxSuggestions := scheduleCfg.MaxSuggestions

	// Day 0 starts at today's UTC midnight
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var slots []entity.MeetingSlot
	for day := 0; day < horizonDays && len(slots) < maxSuggestions; day++ {
		for hour := 0; hour < 24; hour++ {
			candidate := dayStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			partyTimes, ok := s.localizeAll(resolved, candidate, window)
			if !ok {
				continue
			}
			slots = append(slots, entity.MeetingSlot{
				UTC:        candidate,
				PartyTimes: partyTimes,
			})
			break
		}
	}

	s.logger.Debug(context.Background(), "Meeting slot search completed",
		domain.NewField("parties", len(resolved)),
		domain.NewField("slots", len(slots)))

	return slots, nil
}

// BusinessHoursOverlap reports which of the 24 nominal UTC hours fall
// inside the business window for every party. Calendar dates are
// irrelevant here; the answer describes a recurring day.
func (s *ScheduleServiceImpl) BusinessHoursOverlap(parties []string, window entity.BusinessWindow) (*entity.OverlapReport, error) {
	resolved, err := s.resolveParties(parties)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	refDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	report := &entity.OverlapReport{
		Parties: resolved,
		Window:  window,
	}
	for hour := 0; hour < 24; hour++ {
		candidate := refDay.Add(time.Duration(hour) * time.Hour)
		partyTimes, ok := s.localizeAll(resolved, candidate, window)
		if !ok {
			continue
		}
		report.Hours = append(report.Hours, entity.OverlapHour{
			UTCHour:    hour,
			PartyTimes: partyTimes,
		})
	}

	return report, nil
}

// resolveParties maps party identifiers to timezones through the
// location pipeline. Parties that cannot be resolved are dropped; the
// minimum-party check applies to the survivors.
func (s *ScheduleServiceImpl) resolveParties(parties []string) ([]entity.LocationParty, error) {
	resolved := make([]entity.LocationParty, 0, len(parties))
	for _, party := range parties {
		location, err := s.locationService.ResolveLocation(party)
		if err != nil {
			s.logger.Warn(context.Background(), "Dropping unresolvable party",
				domain.NewField("party", party),
				domain.NewField("error", err.Error()))
			continue
		}
		resolved = append(resolved, entity.NewLocationParty(party, location.Zone))
	}

	if len(resolved) < minResolvedParties {
		return nil, domain.ErrInsufficientParties(len(resolved), minResolvedParties)
	}
	return resolved, nil
}

// localizeAll localizes a candidate instant into every party's zone,
// reporting whether every local hour lies inside the window
func (s *ScheduleServiceImpl) localizeAll(parties []entity.LocationParty, candidate time.Time, window entity.BusinessWindow) ([]entity.PartyTime, bool) {
	partyTimes := make([]entity.PartyTime, 0, len(parties))
	all := true
	for _, party := range parties {
		local := entity.NewZonedInstant(party.Zone, candidate)
		within := window.Contains(local.Hour())
		if !within {
			all = false
		}
		partyTimes = append(partyTimes, entity.PartyTime{
			Party:        party,
			Local:        local,
			WithinWindow: within,
		})
	}
	return partyTimes, all
}
