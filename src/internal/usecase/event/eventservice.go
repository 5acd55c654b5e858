package eventservice

import (
	"context"
	"fmt"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/adaptors/ticketmaster"
	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ExternalEventSource is the external provider leg of the aggregation.
type ExternalEventSource interface {
	SearchEvents(ctx context.Context, q ticketmaster.Query) (*core.EventPage, error)
	GetEvent(ctx context.Context, id string) (*core.UnifiedEvent, error)
}

// LegCache caches the raw results of each aggregation leg. A nil cache
// disables caching entirely.
type LegCache interface {
	GetPlatformEvents(ctx context.Context, key string) ([]core.UnifiedEvent, bool)
	SetPlatformEvents(ctx context.Context, key string, events []core.UnifiedEvent) error
	GetTicketmasterPage(ctx context.Context, key string) (*core.EventPage, bool)
	SetTicketmasterPage(ctx context.Context, key string, page *core.EventPage) error
}

type Service struct {
	eventRepo core.EventRepository
	regRepo   core.RegistrationRepository
	external  ExternalEventSource
	cache     LegCache
	now       func() time.Time
}

func NewService(eventRepo core.EventRepository, regRepo core.RegistrationRepository, external ExternalEventSource, cache LegCache) Service {
	return Service{
		eventRepo: eventRepo,
		regRepo:   regRepo,
		external:  external,
		cache:     cache,
		now:       time.Now,
	}
}

// CreateEvent creates a platform event owned by ownerID. Available tickets
// start at capacity and the event is public unless stated otherwise.
func (s *Service) CreateEvent(req *core.CreateEventRequest, ownerID string) (*core.UnifiedEvent, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	if core.ParseISO(req.StartDate).IsZero() {
		return nil, fmt.Errorf("%w: startDate must be an ISO-8601 timestamp", core.ErrValidation)
	}
	if req.EndDate != "" && core.ParseISO(req.EndDate).IsZero() {
		return nil, fmt.Errorf("%w: endDate must be an ISO-8601 timestamp", core.ErrValidation)
	}

	now := s.now().UTC().Format(time.RFC3339)
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	capacity := req.Capacity
	available := req.Capacity
	images := req.Images
	if images == nil {
		images = []string{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	event := &core.UnifiedEvent{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Venue:            req.Venue,
		Images:           images,
		Category:         req.Category,
		Price:            req.Price,
		Status:           core.StatusActive,
		Source:           core.SourcePlatform,
		CreatedBy:        ownerID,
		CreatedAt:        now,
		UpdatedAt:        now,
		IsPublic:         &isPublic,
		Capacity:         &capacity,
		AvailableTickets: &available,
		Tags:             tags,
	}

	if err := s.eventRepo.CreateEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetPlatformEvent fetches one platform event by its store id.
func (s *Service) GetPlatformEvent(id string) (*core.UnifiedEvent, error) {
	return s.eventRepo.GetEventByID(id)
}

// ListPlatformEvents lists platform events, optionally narrowed to an
// owner or to public listings.
func (s *Service) ListPlatformEvents(filter core.PlatformEventFilter) ([]core.UnifiedEvent, error) {
	events, err := s.eventRepo.ListEvents(filter)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []core.UnifiedEvent{}
	}
	return events, nil
}

// UpdateEvent applies a patch to an owned platform event. Changing the
// capacity recomputes available tickets against the already-sold count so
// the derived field can never go negative.
func (s *Service) UpdateEvent(id string, req *core.UpdateEventRequest, ownerID string) (*core.UnifiedEvent, error) {
	event, err := s.eventRepo.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != ownerID {
		return nil, fmt.Errorf("%w: you do not own this event", core.ErrForbidden)
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		if core.ParseISO(*req.StartDate).IsZero() {
			return nil, fmt.Errorf("%w: startDate must be an ISO-8601 timestamp", core.ErrValidation)
		}
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Images != nil {
		event.Images = *req.Images
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Price != nil {
		event.Price = req.Price
	}
	if req.IsPublic != nil {
		event.IsPublic = req.IsPublic
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Tags != nil {
		event.Tags = *req.Tags
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, fmt.Errorf("%w: capacity cannot be negative", core.ErrValidation)
		}
		sold := *event.Capacity - *event.AvailableTickets
		available := *req.Capacity - sold
		if available < 0 {
			available = 0
		}
		capacity := *req.Capacity
		event.Capacity = &capacity
		event.AvailableTickets = &available
	}

	event.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.eventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an owned platform event unless it still has active
// registrations.
func (s *Service) DeleteEvent(id string, ownerID string) error {
	event, err := s.eventRepo.GetEventByID(id)
	if err != nil {
		return err
	}
	if event.CreatedBy != ownerID {
		return fmt.Errorf("%w: you do not own this event", core.ErrForbidden)
	}

	active, err := s.regRepo.CountActiveRegistrations(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: cannot delete event with active registrations", core.ErrRegistrationsExist)
	}

	return s.eventRepo.DeleteEvent(id)
}

// ListStaffEvents returns a staff member's own events with their active
// registration counts, newest first.
func (s *Service) ListStaffEvents(staffID string) ([]core.StaffEvent, error) {
	events, err := s.eventRepo.ListEvents(core.PlatformEventFilter{CreatedBy: staffID})
	if err != nil {
		return nil, err
	}

	staffEvents := make([]core.StaffEvent, 0, len(events))
	for _, event := range events {
		count, err := s.regRepo.CountActiveRegistrations(event.ID)
		if err != nil {
			return nil, err
		}
		staffEvents = append(staffEvents, core.StaffEvent{UnifiedEvent: event, Registrations: count})
	}

	sortStaffEventsByCreatedAtDesc(staffEvents)
	return staffEvents, nil
}

// EventStats summarises a staff member's events: upcoming means a future
// start on an active event, past means a started or completed one.
func (s *Service) EventStats(staffID string) (*core.EventStats, error) {
	events, err := s.eventRepo.ListEvents(core.PlatformEventFilter{CreatedBy: staffID})
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &core.EventStats{TotalEvents: len(events)}
	for _, event := range events {
		start := event.StartTime()
		if start.After(now) && event.Status == core.StatusActive {
			stats.UpcomingEvents++
		}
		if !start.After(now) || event.Status == core.StatusCompleted {
			stats.PastEvents++
		}
	}
	return stats, nil
}
