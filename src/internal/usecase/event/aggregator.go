package eventservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aangsquared/Events-Planner/src/internal/adaptors/ticketmaster"
	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/sirupsen/logrus"
)

const (
	SourceAll = "all"

	defaultPageSize = 20
)

// platformLegKey caches the platform leg; the aggregation always fetches
// the full public listing and filters after the merge, so one key suffices.
const platformLegKey = "public"

// ListEvents merges the platform and external legs, filters, sorts and
// paginates the merged set. A failing leg degrades to empty instead of
// failing the listing.
func (s *Service) ListEvents(ctx context.Context, filters core.EventFilters, page, size int) (*core.EventPage, error) {
	if size <= 0 {
		size = defaultPageSize
	}
	if page < 0 {
		page = 0
	}
	source := filters.Source
	if source == "" {
		source = SourceAll
	}

	var allEvents []core.UnifiedEvent

	// Platform events first, external second; the concatenation order is
	// the tie-break for equal start dates under the stable sort below.
	if source == SourceAll || source == core.SourcePlatform {
		allEvents = append(allEvents, s.platformLeg(ctx)...)
	}
	if source == SourceAll || source == core.SourceTicketmaster {
		allEvents = append(allEvents, s.ticketmasterLeg(ctx, filters, page, size)...)
	}

	// Drop platform events that already ended. External events are never
	// date-dropped here; the provider already filters to upcoming.
	now := s.now()
	filtered := allEvents[:0:0]
	for _, event := range allEvents {
		if event.Source == core.SourcePlatform && event.EndDate != "" {
			if end := event.EndTime(); !end.IsZero() && !end.After(now) {
				continue
			}
		}
		filtered = append(filtered, event)
	}

	if filters.Search != "" {
		search := strings.ToLower(filters.Search)
		filtered = keep(filtered, func(e *core.UnifiedEvent) bool {
			return strings.Contains(strings.ToLower(e.Name), search) ||
				strings.Contains(strings.ToLower(e.Description), search) ||
				strings.Contains(strings.ToLower(e.Venue.Name), search) ||
				strings.Contains(strings.ToLower(e.Venue.City), search)
		})
	}

	// The external leg was already constrained by the mapped category at
	// the provider, so only platform events get category-filtered here.
	if filters.Category != "" {
		category := strings.ToLower(filters.Category)
		filtered = keep(filtered, func(e *core.UnifiedEvent) bool {
			if e.Source != core.SourcePlatform {
				return true
			}
			return strings.Contains(strings.ToLower(e.Category), category)
		})
	}

	if filters.City != "" {
		city := strings.ToLower(filters.City)
		filtered = keep(filtered, func(e *core.UnifiedEvent) bool {
			return strings.Contains(strings.ToLower(e.Venue.City), city)
		})
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartTime().Before(filtered[j].StartTime())
	})

	total := len(filtered)
	start := page * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	pageEvents := make([]core.UnifiedEvent, 0, end-start)
	pageEvents = append(pageEvents, filtered[start:end]...)

	return &core.EventPage{
		Events: pageEvents,
		Pagination: core.Pagination{
			Page:          page,
			Size:          size,
			TotalElements: total,
			TotalPages:    (total + size - 1) / size,
		},
	}, nil
}

// GetEvent resolves a unified event id to its source and fetches the
// authoritative record. Unlike the aggregation legs, a provider failure
// here is a hard error.
func (s *Service) GetEvent(ctx context.Context, id string) (*core.UnifiedEvent, error) {
	if core.IsTicketmasterID(id) {
		return s.external.GetEvent(ctx, id)
	}
	return s.eventRepo.GetEventByID(id)
}

// TicketmasterEvents is the standalone external listing. Provider failures
// surface to the caller here; only the aggregation degrades.
func (s *Service) TicketmasterEvents(ctx context.Context, q ticketmaster.Query) (*core.EventPage, error) {
	if s.cache != nil {
		key := cacheKey(q)
		if page, ok := s.cache.GetTicketmasterPage(ctx, key); ok {
			return page, nil
		}
		page, err := s.external.SearchEvents(ctx, q)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetTicketmasterPage(ctx, key, page); err != nil {
			logrus.WithError(err).Warn("failed to cache ticketmaster leg")
		}
		return page, nil
	}
	return s.external.SearchEvents(ctx, q)
}

func (s *Service) platformLeg(ctx context.Context) []core.UnifiedEvent {
	if s.cache != nil {
		if events, ok := s.cache.GetPlatformEvents(ctx, platformLegKey); ok {
			return events
		}
	}
	events, err := s.eventRepo.ListEvents(core.PlatformEventFilter{PublicOnly: true})
	if err != nil {
		logrus.WithError(err).Error("error fetching platform events")
		return nil
	}
	if s.cache != nil {
		if err := s.cache.SetPlatformEvents(ctx, platformLegKey, events); err != nil {
			logrus.WithError(err).Warn("failed to cache platform leg")
		}
	}
	return events
}

// ticketmasterLeg requests twice the page size to compensate for events
// the post-merge filters will drop.
func (s *Service) ticketmasterLeg(ctx context.Context, filters core.EventFilters, page, size int) []core.UnifiedEvent {
	q := ticketmaster.Query{
		City:     filters.City,
		Keyword:  filters.Search,
		Category: filters.Category,
		Page:     page,
		Size:     size * 2,
	}
	result, err := s.TicketmasterEvents(ctx, q)
	if err != nil {
		logrus.WithError(err).Error("error fetching Ticketmaster events")
		return nil
	}
	return result.Events
}

func keep(events []core.UnifiedEvent, pred func(*core.UnifiedEvent) bool) []core.UnifiedEvent {
	kept := events[:0:0]
	for i := range events {
		if pred(&events[i]) {
			kept = append(kept, events[i])
		}
	}
	return kept
}

func cacheKey(q ticketmaster.Query) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", q.City, q.Keyword, q.Category, q.Page, q.Size)
}

func sortStaffEventsByCreatedAtDesc(events []core.StaffEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return core.ParseISO(events[i].CreatedAt).After(core.ParseISO(events[j].CreatedAt))
	})
}
