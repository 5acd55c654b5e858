package eventservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/adaptors/ticketmaster"
	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeEventRepo struct {
	events  map[string]core.UnifiedEvent
	listErr error
}

func newFakeEventRepo(events ...core.UnifiedEvent) *fakeEventRepo {
	repo := &fakeEventRepo{events: map[string]core.UnifiedEvent{}}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (f *fakeEventRepo) CreateEvent(event *core.UnifiedEvent) error {
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) GetEventByID(id string) (*core.UnifiedEvent, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", core.ErrNotFound, id)
	}
	return &event, nil
}

func (f *fakeEventRepo) ListEvents(filter core.PlatformEventFilter) ([]core.UnifiedEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []core.UnifiedEvent
	for _, event := range f.events {
		if filter.PublicOnly && (event.IsPublic == nil || !*event.IsPublic) {
			continue
		}
		if filter.CreatedBy != "" && event.CreatedBy != filter.CreatedBy {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime().Before(out[j].StartTime())
	})
	return out, nil
}

func (f *fakeEventRepo) UpdateEvent(event *core.UnifiedEvent) error {
	if _, ok := f.events[event.ID]; !ok {
		return fmt.Errorf("%w: event %s", core.ErrNotFound, event.ID)
	}
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(id string) error {
	if _, ok := f.events[id]; !ok {
		return fmt.Errorf("%w: event %s", core.ErrNotFound, id)
	}
	delete(f.events, id)
	return nil
}

type fakeRegRepo struct {
	regs map[string]core.Registration
}

func newFakeRegRepo(regs ...core.Registration) *fakeRegRepo {
	repo := &fakeRegRepo{regs: map[string]core.Registration{}}
	for _, r := range regs {
		repo.regs[r.ID] = r
	}
	return repo
}

func (f *fakeRegRepo) CreateRegistration(reg *core.Registration) error {
	for _, existing := range f.regs {
		if existing.UserID == reg.UserID && existing.EventID == reg.EventID &&
			existing.Status == core.RegistrationRegistered {
			return fmt.Errorf("%w: already registered for this event", core.ErrAlreadyRegistered)
		}
	}
	f.regs[reg.ID] = *reg
	return nil
}

func (f *fakeRegRepo) GetRegistrationByID(id string) (*core.Registration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, fmt.Errorf("%w: registration %s", core.ErrNotFound, id)
	}
	return &reg, nil
}

func (f *fakeRegRepo) ListRegistrationsForUser(userID string) ([]core.Registration, error) {
	var out []core.Registration
	for _, reg := range f.regs {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRegRepo) HasActiveRegistration(userID, eventID string) (bool, error) {
	for _, reg := range f.regs {
		if reg.UserID == userID && reg.EventID == eventID && reg.Status == core.RegistrationRegistered {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegRepo) CountActiveRegistrations(eventID string) (int, error) {
	count := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.Status == core.RegistrationRegistered {
			count++
		}
	}
	return count, nil
}

func (f *fakeRegRepo) ListRegistrationsForEvents(eventIDs []string) ([]core.Registration, error) {
	ids := map[string]bool{}
	for _, id := range eventIDs {
		ids[id] = true
	}
	var out []core.Registration
	for _, reg := range f.regs {
		if ids[reg.EventID] {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRegRepo) CancelRegistration(id string, at time.Time) error {
	reg, ok := f.regs[id]
	if !ok {
		return fmt.Errorf("%w: registration %s", core.ErrNotFound, id)
	}
	reg.Status = core.RegistrationCancelled
	reg.CancelledAt = &at
	f.regs[id] = reg
	return nil
}

type fakeExternal struct {
	events      []core.UnifiedEvent
	err         error
	searchCalls int
}

func (f *fakeExternal) SearchEvents(_ context.Context, q ticketmaster.Query) (*core.EventPage, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &core.EventPage{
		Events: f.events,
		Pagination: core.Pagination{
			Page:          q.Page,
			Size:          q.Size,
			TotalElements: len(f.events),
			TotalPages:    1,
		},
	}, nil
}

func (f *fakeExternal) GetEvent(_ context.Context, id string) (*core.UnifiedEvent, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, fmt.Errorf("%w: event %s", core.ErrNotFound, id)
}

func newTestService(eventRepo *fakeEventRepo, regRepo *fakeRegRepo, external *fakeExternal) Service {
	svc := NewService(eventRepo, regRepo, external, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func platformEvent(id, name, city, startDate string, mutate ...func(*core.UnifiedEvent)) core.UnifiedEvent {
	isPublic := true
	capacity := 100
	available := 100
	event := core.UnifiedEvent{
		ID:               id,
		Name:             name,
		StartDate:        startDate,
		Venue:            core.Venue{Name: name + " Hall", City: city},
		Category:         core.CategoryMusic,
		Status:           core.StatusActive,
		Source:           core.SourcePlatform,
		CreatedBy:        "staff-1",
		CreatedAt:        testNow.Format(time.RFC3339),
		IsPublic:         &isPublic,
		Capacity:         &capacity,
		AvailableTickets: &available,
	}
	for _, fn := range mutate {
		fn(&event)
	}
	return event
}

func externalEvent(id, name, city, startDate string) core.UnifiedEvent {
	return core.UnifiedEvent{
		ID:        id,
		Name:      name,
		StartDate: startDate,
		Venue:     core.Venue{Name: name + " Arena", City: city},
		Category:  core.CategoryMusic,
		Status:    core.StatusActive,
		Source:    core.SourceTicketmaster,
		TicketmasterData: &core.TicketmasterData{
			OriginalID: id[len(core.TicketmasterIDPrefix):],
			URL:        "https://tickets.example.com/" + id,
			TicketURL:  "https://tickets.example.com/" + id,
		},
	}
}

func TestCreateEventDefaults(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo, newFakeRegRepo(), &fakeExternal{})

	event, err := svc.CreateEvent(&core.CreateEventRequest{
		Name:      "Open Mic",
		StartDate: "2025-06-01T19:00:00",
		Category:  core.CategoryMusic,
		Capacity:  40,
	}, "staff-1")
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.False(t, core.IsTicketmasterID(event.ID))
	assert.Equal(t, core.SourcePlatform, event.Source)
	assert.Equal(t, core.StatusActive, event.Status)
	assert.Equal(t, "staff-1", event.CreatedBy)
	require.NotNil(t, event.IsPublic)
	assert.True(t, *event.IsPublic)
	require.NotNil(t, event.AvailableTickets)
	assert.Equal(t, 40, *event.AvailableTickets)
	assert.NotNil(t, event.Images)
	assert.NotNil(t, event.Tags)
}

func TestCreateEventValidation(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), newFakeRegRepo(), &fakeExternal{})

	_, err := svc.CreateEvent(&core.CreateEventRequest{Name: "No capacity", StartDate: "2025-06-01", Category: "Music"}, "staff-1")
	assert.True(t, errors.Is(err, core.ErrValidation))

	_, err = svc.CreateEvent(&core.CreateEventRequest{Name: "Bad date", StartDate: "tomorrow", Category: "Music", Capacity: 5}, "staff-1")
	assert.True(t, errors.Is(err, core.ErrValidation))
}

func TestUpdateEventOwnership(t *testing.T) {
	repo := newFakeEventRepo(platformEvent("e1", "Open Mic", "Chicago", "2025-06-01T19:00:00"))
	svc := newTestService(repo, newFakeRegRepo(), &fakeExternal{})

	name := "Renamed"
	_, err := svc.UpdateEvent("e1", &core.UpdateEventRequest{Name: &name}, "someone-else")
	assert.True(t, errors.Is(err, core.ErrForbidden))

	updated, err := svc.UpdateEvent("e1", &core.UpdateEventRequest{Name: &name}, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateEventCapacityRecompute(t *testing.T) {
	event := platformEvent("e1", "Open Mic", "Chicago", "2025-06-01T19:00:00", func(e *core.UnifiedEvent) {
		available := 40 // 60 of 100 sold
		e.AvailableTickets = &available
	})
	repo := newFakeEventRepo(event)
	svc := newTestService(repo, newFakeRegRepo(), &fakeExternal{})

	// Shrinking under the sold count clamps available to zero.
	capacity := 50
	updated, err := svc.UpdateEvent("e1", &core.UpdateEventRequest{Capacity: &capacity}, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, 50, *updated.Capacity)
	assert.Equal(t, 0, *updated.AvailableTickets)

	// Growing keeps the sold count fixed.
	capacity = 80
	updated, err = svc.UpdateEvent("e1", &core.UpdateEventRequest{Capacity: &capacity}, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, 30, *updated.AvailableTickets)
}

func TestDeleteEventBlockedByRegistrations(t *testing.T) {
	repo := newFakeEventRepo(platformEvent("e1", "Open Mic", "Chicago", "2025-06-01T19:00:00"))
	regRepo := newFakeRegRepo(core.Registration{
		ID: "r1", UserID: "u1", EventID: "e1", Status: core.RegistrationRegistered,
	})
	svc := newTestService(repo, regRepo, &fakeExternal{})

	err := svc.DeleteEvent("e1", "staff-1")
	assert.True(t, errors.Is(err, core.ErrRegistrationsExist))

	require.NoError(t, regRepo.CancelRegistration("r1", testNow))
	require.NoError(t, svc.DeleteEvent("e1", "staff-1"))

	_, err = svc.GetPlatformEvent("e1")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestEventStats(t *testing.T) {
	repo := newFakeEventRepo(
		platformEvent("up1", "Future", "Chicago", "2025-06-01T19:00:00"),
		platformEvent("past1", "Gone", "Chicago", "2025-04-01T19:00:00"),
		platformEvent("done1", "Done", "Chicago", "2025-06-10T19:00:00", func(e *core.UnifiedEvent) {
			e.Status = core.StatusCompleted
		}),
	)
	svc := newTestService(repo, newFakeRegRepo(), &fakeExternal{})

	stats, err := svc.EventStats("staff-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 1, stats.UpcomingEvents)
	assert.Equal(t, 2, stats.PastEvents)
}

func TestListStaffEventsCountsAndOrder(t *testing.T) {
	repo := newFakeEventRepo(
		platformEvent("old", "Old", "Chicago", "2025-06-01T19:00:00", func(e *core.UnifiedEvent) {
			e.CreatedAt = "2025-01-01T00:00:00Z"
		}),
		platformEvent("new", "New", "Chicago", "2025-06-02T19:00:00", func(e *core.UnifiedEvent) {
			e.CreatedAt = "2025-03-01T00:00:00Z"
		}),
	)
	regRepo := newFakeRegRepo(
		core.Registration{ID: "r1", UserID: "u1", EventID: "new", Status: core.RegistrationRegistered},
		core.Registration{ID: "r2", UserID: "u2", EventID: "new", Status: core.RegistrationCancelled},
	)
	svc := newTestService(repo, regRepo, &fakeExternal{})

	staffEvents, err := svc.ListStaffEvents("staff-1")
	require.NoError(t, err)
	require.Len(t, staffEvents, 2)
	assert.Equal(t, "new", staffEvents[0].ID)
	assert.Equal(t, 1, staffEvents[0].Registrations)
	assert.Equal(t, "old", staffEvents[1].ID)
	assert.Equal(t, 0, staffEvents[1].Registrations)
}
