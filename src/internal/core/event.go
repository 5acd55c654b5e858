package core

import (
	"strings"
	"time"
)

// Event sources. Every unified event carries exactly one of these, and
// external ids are namespaced so the source can be recovered from the id
// alone.
const (
	SourcePlatform     = "platform"
	SourceTicketmaster = "ticketmaster"

	// TicketmasterIDPrefix is prepended to the provider's native event id so
	// external ids can never collide with platform-generated uuids.
	TicketmasterIDPrefix = "tm_"
)

// Event statuses shared by both sources.
const (
	StatusActive      = "active"
	StatusCancelled   = "cancelled"
	StatusPostponed   = "postponed"
	StatusRescheduled = "rescheduled"
	StatusCompleted   = "completed"
)

// Venue is the place an event happens at. External events with no venue
// information degrade to Name "TBA" and empty strings.
type Venue struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state,omitempty"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Price is the advertised price range of an event.
type Price struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// PriceRange mirrors one entry of the provider's priceRanges array.
type PriceRange struct {
	Type     string  `json:"type,omitempty"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Classification is the provider's taxonomy entry kept verbatim on the
// external variant.
type Classification struct {
	Segment  string `json:"segment"`
	Genre    string `json:"genre"`
	SubGenre string `json:"subGenre,omitempty"`
}

// SalesWindow is the provider's public sale window.
type SalesWindow struct {
	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
}

// TicketmasterData carries the external-variant fields of a unified event.
type TicketmasterData struct {
	OriginalID      string           `json:"originalId"`
	URL             string           `json:"url"`
	TicketURL       string           `json:"ticketUrl,omitempty"`
	PriceRanges     []PriceRange     `json:"priceRanges,omitempty"`
	Sales           struct {
		Public SalesWindow `json:"public"`
	} `json:"sales"`
	Classifications []Classification `json:"classifications,omitempty"`
}

// UnifiedEvent is the merged event representation served to clients
// regardless of origin. It is a tagged union discriminated by Source: the
// platform-only fields are pointers/zero for external events and
// TicketmasterData is nil for platform events. Dates are ISO-8601 strings
// as stored; use StartTime/EndTime to compare them.
type UnifiedEvent struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Venue       Venue    `json:"venue"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Price       *Price   `json:"price,omitempty"`
	Status      string   `json:"status"`
	Source      string   `json:"source"`

	// Platform variant
	CreatedBy        string   `json:"createdBy,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
	IsPublic         *bool    `json:"isPublic,omitempty"`
	Capacity         *int     `json:"capacity,omitempty"`
	AvailableTickets *int     `json:"availableTickets,omitempty"`
	Tags             []string `json:"tags,omitempty"`

	// External variant
	TicketmasterData *TicketmasterData `json:"ticketmasterData,omitempty"`
	LastSynced       string            `json:"lastSynced,omitempty"`
}

// IsExternal reports whether the event came from the external provider.
func (e *UnifiedEvent) IsExternal() bool {
	return e.Source == SourceTicketmaster
}

// StartTime parses the event's start date. Unparseable dates yield the zero
// time so sorting stays total.
func (e *UnifiedEvent) StartTime() time.Time {
	return ParseISO(e.StartDate)
}

// EndTime parses the event's end date, or the zero time when absent.
func (e *UnifiedEvent) EndTime() time.Time {
	if e.EndDate == "" {
		return time.Time{}
	}
	return ParseISO(e.EndDate)
}

// IsTicketmasterID reports whether a unified event id belongs to the
// external namespace.
func IsTicketmasterID(id string) bool {
	return strings.HasPrefix(id, TicketmasterIDPrefix)
}

// ParseISO parses the ISO-8601 timestamp shapes this system stores: full
// RFC3339, a local date-time with no zone, and a bare date. Anything else
// yields the zero time.
func ParseISO(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// EventFilters are the client-facing filters of the unified listing.
type EventFilters struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	City     string `json:"city,omitempty"`
	Source   string `json:"source,omitempty"` // all | platform | ticketmaster
}

// Pagination echoes how a listing page was cut. Totals are computed from
// the filtered set, not the raw fetch counts.
type Pagination struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// EventPage is one page of unified events.
type EventPage struct {
	Events     []UnifiedEvent `json:"events"`
	Pagination Pagination     `json:"pagination"`
}

// CreateEventRequest is the payload for creating a platform event.
type CreateEventRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate"`
	Venue       Venue    `json:"venue"`
	Images      []string `json:"images"`
	Category    string   `json:"category" validate:"required"`
	Price       *Price   `json:"price"`
	Capacity    int      `json:"capacity" validate:"required,min=1"`
	IsPublic    *bool    `json:"isPublic"`
	Tags        []string `json:"tags"`
}

// UpdateEventRequest is the patch payload for a platform event. Nil fields
// are left untouched.
type UpdateEventRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	EndDate     *string   `json:"endDate,omitempty"`
	Venue       *Venue    `json:"venue,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Price       *Price    `json:"price,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	IsPublic    *bool     `json:"isPublic,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// PlatformEventFilter narrows the platform leg of a listing.
type PlatformEventFilter struct {
	CreatedBy  string
	PublicOnly bool
}

// StaffEvent is a staff-owned event with its active registration count.
type StaffEvent struct {
	UnifiedEvent
	Registrations int `json:"registrations"`
}

// EventStats summarises a staff member's events.
type EventStats struct {
	TotalEvents    int `json:"totalEvents"`
	UpcomingEvents int `json:"upcomingEvents"`
	PastEvents     int `json:"pastEvents"`
}

// EventRepository defines the platform event store operations.
type EventRepository interface {
	CreateEvent(event *UnifiedEvent) error
	GetEventByID(id string) (*UnifiedEvent, error)
	ListEvents(filter PlatformEventFilter) ([]UnifiedEvent, error)
	UpdateEvent(event *UnifiedEvent) error
	DeleteEvent(id string) error
}
