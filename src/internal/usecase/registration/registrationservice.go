package registrationservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/aangsquared/Events-Planner/src/pkg/utilities"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const recentActivityLimit = 10

// EventSource resolves a unified event id to its authoritative record,
// whichever source it lives in.
type EventSource interface {
	GetEvent(ctx context.Context, id string) (*core.UnifiedEvent, error)
}

type Service struct {
	regRepo   core.RegistrationRepository
	eventRepo core.EventRepository
	events    EventSource
	mailer    *utilities.Mailer
	now       func() time.Time
}

func NewService(regRepo core.RegistrationRepository, eventRepo core.EventRepository, events EventSource, mailer *utilities.Mailer) Service {
	return Service{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		events:    events,
		mailer:    mailer,
		now:       time.Now,
	}
}

// Register registers a user for a unified event from either source. The
// registration snapshots the event fields it needs so it survives the
// event changing or, for external events, never being stored locally.
func (s *Service) Register(ctx context.Context, userID, userEmail, userName, eventID string) (*core.Registration, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", core.ErrValidation)
	}

	exists, err := s.regRepo.HasActiveRegistration(userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing registration: %v", err)
	}
	if exists {
		return nil, core.ErrAlreadyRegistered
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == core.StatusCancelled {
		return nil, fmt.Errorf("%w: event is cancelled", core.ErrConflict)
	}
	if start := event.StartTime(); !start.IsZero() && start.Before(s.now()) {
		return nil, fmt.Errorf("%w: event has already started", core.ErrConflict)
	}
	if event.Source == core.SourcePlatform && event.AvailableTickets != nil && *event.AvailableTickets <= 0 {
		return nil, fmt.Errorf("%w: event is sold out", core.ErrConflict)
	}

	reg := &core.Registration{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserEmail:    userEmail,
		UserName:     userName,
		EventID:      event.ID,
		EventName:    event.Name,
		EventDate:    event.StartDate,
		EventVenue:   event.Venue.Name,
		EventSource:  event.Source,
		RegisteredAt: s.now().UTC(),
		Status:       core.RegistrationRegistered,
		TicketCount:  1,
		TicketURL:    ticketURL(event),
	}

	if err := s.regRepo.CreateRegistration(reg); err != nil {
		return nil, err
	}

	if event.Source == core.SourcePlatform {
		s.adjustAvailableTickets(event.ID, -1)
	}

	if s.mailer.Enabled() {
		go func() {
			if err := s.mailer.SendRegistrationConfirmation(userEmail, event.Name, event.StartDate); err != nil {
				logrus.WithError(err).Warn("failed to send registration confirmation")
			}
		}()
	}

	return reg, nil
}

// Cancel cancels one of the caller's active registrations and releases the
// ticket back to the event when it is a platform one.
func (s *Service) Cancel(userID, registrationID string) error {
	reg, err := s.regRepo.GetRegistrationByID(registrationID)
	if err != nil {
		return err
	}
	if reg.UserID != userID {
		return fmt.Errorf("%w: registration belongs to another user", core.ErrForbidden)
	}
	if reg.EffectiveStatus(s.now()) != core.RegistrationRegistered {
		return fmt.Errorf("%w: registration is not active", core.ErrConflict)
	}

	if err := s.regRepo.CancelRegistration(registrationID, s.now().UTC()); err != nil {
		return err
	}

	if reg.EventSource == core.SourcePlatform {
		s.adjustAvailableTickets(reg.EventID, 1)
	}
	return nil
}

// ListForUser returns the caller's active registrations ordered by event
// date, with the derived ended state projected onto each.
func (s *Service) ListForUser(userID string) ([]core.Registration, error) {
	all, err := s.regRepo.ListRegistrationsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching registrations: %v", err)
	}

	now := s.now()
	active := make([]core.Registration, 0, len(all))
	for _, reg := range all {
		if reg.Status != core.RegistrationRegistered {
			continue
		}
		reg.Status = reg.EffectiveStatus(now)
		active = append(active, reg)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return core.ParseISO(active[i].EventDate).Before(core.ParseISO(active[j].EventDate))
	})
	return active, nil
}

// RecentActivity returns the caller's latest registrations regardless of
// status, newest first.
func (s *Service) RecentActivity(userID string) ([]core.Registration, error) {
	all, err := s.regRepo.ListRegistrationsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching registrations: %v", err)
	}

	now := s.now()
	for i := range all {
		all[i].Status = all[i].EffectiveStatus(now)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RegisteredAt.After(all[j].RegisteredAt)
	})
	if len(all) > recentActivityLimit {
		all = all[:recentActivityLimit]
	}
	return all, nil
}

// ListForStaff groups the registrations of the staff member's own events,
// one group per event in the event listing order.
func (s *Service) ListForStaff(staffID string) ([]core.StaffEventRegistrations, error) {
	events, err := s.eventRepo.ListEvents(core.PlatformEventFilter{CreatedBy: staffID})
	if err != nil {
		return nil, fmt.Errorf("error fetching events: %v", err)
	}
	if len(events) == 0 {
		return []core.StaffEventRegistrations{}, nil
	}

	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}
	regs, err := s.regRepo.ListRegistrationsForEvents(ids)
	if err != nil {
		return nil, fmt.Errorf("error fetching registrations: %v", err)
	}

	now := s.now()
	byEvent := make(map[string][]core.Registration, len(events))
	for _, reg := range regs {
		reg.Status = reg.EffectiveStatus(now)
		byEvent[reg.EventID] = append(byEvent[reg.EventID], reg)
	}

	grouped := make([]core.StaffEventRegistrations, 0, len(events))
	for _, event := range events {
		regs := byEvent[event.ID]
		if regs == nil {
			regs = []core.Registration{}
		}
		grouped = append(grouped, core.StaffEventRegistrations{
			EventID:       event.ID,
			EventName:     event.Name,
			StartDate:     event.StartDate,
			Registrations: regs,
		})
	}
	return grouped, nil
}

// Stats summarises registrations across the staff member's events.
func (s *Service) Stats(staffID string) (*core.RegistrationStats, error) {
	grouped, err := s.ListForStaff(staffID)
	if err != nil {
		return nil, err
	}

	stats := &core.RegistrationStats{ByStatus: map[string]int{}}
	for _, group := range grouped {
		for _, reg := range group.Registrations {
			stats.TotalRegistrations++
			stats.ByStatus[reg.Status]++
		}
	}
	return stats, nil
}

// adjustAvailableTickets applies a best-effort ticket count delta to a
// platform event, clamped to [0, capacity]. Registration rows stay the
// source of truth; a lost update here only skews the displayed count.
func (s *Service) adjustAvailableTickets(eventID string, delta int) {
	event, err := s.eventRepo.GetEventByID(eventID)
	if err != nil {
		logrus.WithError(err).WithField("eventId", eventID).Warn("failed to load event for ticket adjustment")
		return
	}
	if event.AvailableTickets == nil {
		return
	}
	available := *event.AvailableTickets + delta
	if available < 0 {
		available = 0
	}
	if event.Capacity != nil && available > *event.Capacity {
		available = *event.Capacity
	}
	event.AvailableTickets = &available
	if err := s.eventRepo.UpdateEvent(event); err != nil {
		logrus.WithError(err).WithField("eventId", eventID).Warn("failed to adjust available tickets")
	}
}

func ticketURL(event *core.UnifiedEvent) string {
	if event.TicketmasterData == nil {
		return ""
	}
	if event.TicketmasterData.TicketURL != "" {
		return event.TicketmasterData.TicketURL
	}
	return event.TicketmasterData.URL
}
