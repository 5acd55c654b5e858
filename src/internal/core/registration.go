package core

import "time"

// Registration statuses. StatusEnded is derived at read time and never
// stored.
const (
	RegistrationRegistered = "registered"
	RegistrationCancelled  = "cancelled"
	RegistrationAttended   = "attended"
	RegistrationEnded      = "ended"
)

// Registration is a user's registration for a unified event. Event fields
// are a denormalized snapshot taken at registration time so the record
// stays readable after the source event changes or, for external events,
// was never persisted at all.
type Registration struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	UserEmail   string     `json:"userEmail"`
	UserName    string     `json:"userName"`
	EventID     string     `json:"eventId"`
	EventName   string     `json:"eventName"`
	EventDate   string     `json:"eventDate"`
	EventVenue  string     `json:"eventVenue"`
	EventSource string     `json:"eventSource"`
	RegisteredAt time.Time `json:"registeredAt"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	TicketCount int        `json:"ticketCount"`
	TicketURL   string     `json:"ticketUrl,omitempty"`
}

// EffectiveStatus projects the derived "ended" state: a registration still
// marked registered whose event date has passed reads as ended. A date-only
// event date is normalized to end of day before comparing.
func (r *Registration) EffectiveStatus(now time.Time) string {
	if r.Status != RegistrationRegistered {
		return r.Status
	}
	end := ParseISO(r.EventDate)
	if end.IsZero() {
		return r.Status
	}
	if len(r.EventDate) == len("2006-01-02") {
		end = end.Add(24*time.Hour - time.Second)
	}
	if now.After(end) {
		return RegistrationEnded
	}
	return r.Status
}

// StaffEventRegistrations groups the registrations of one staff-owned
// event for the staff dashboard.
type StaffEventRegistrations struct {
	EventID       string         `json:"eventId"`
	EventName     string         `json:"eventName"`
	StartDate     string         `json:"startDate"`
	Registrations []Registration `json:"registrations"`
}

// RegistrationStats summarises registrations across a staff member's
// events.
type RegistrationStats struct {
	TotalRegistrations int            `json:"totalRegistrations"`
	ByStatus           map[string]int `json:"byStatus"`
}

// RegistrationRepository defines the registration store operations.
type RegistrationRepository interface {
	CreateRegistration(reg *Registration) error
	GetRegistrationByID(id string) (*Registration, error)
	ListRegistrationsForUser(userID string) ([]Registration, error)
	HasActiveRegistration(userID, eventID string) (bool, error)
	CountActiveRegistrations(eventID string) (int, error)
	ListRegistrationsForEvents(eventIDs []string) ([]Registration, error)
	CancelRegistration(id string, at time.Time) error
}
