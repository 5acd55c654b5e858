package persistance

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/lib/pq"
)

type RegistrationRepo struct {
	db *Database
}

func NewRegistrationRepo(d *Database) RegistrationRepo {
	return RegistrationRepo{db: d}
}

const registrationColumns = `id, user_id, user_email, user_name, event_id, event_name,
	event_date, event_venue, event_source, registered_at, status, cancelled_at, ticket_count, ticket_url`

// CreateRegistration inserts a registration. The partial unique index on
// (user_id, event_id) WHERE status='registered' turns a concurrent
// duplicate into a Conflict instead of a second record.
func (rr *RegistrationRepo) CreateRegistration(reg *core.Registration) error {
	query := `
		INSERT INTO registrations (id, user_id, user_email, user_name, event_id, event_name,
			event_date, event_venue, event_source, registered_at, status, ticket_count, ticket_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := rr.db.db.Exec(query,
		reg.ID, reg.UserID, reg.UserEmail, reg.UserName, reg.EventID, reg.EventName,
		reg.EventDate, reg.EventVenue, reg.EventSource, reg.RegisteredAt, reg.Status,
		reg.TicketCount, nullString(reg.TicketURL))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %v", core.ErrAlreadyRegistered, err)
		}
		return fmt.Errorf("failed to create registration: %v", err)
	}
	return nil
}

func (rr *RegistrationRepo) GetRegistrationByID(id string) (*core.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE id = $1`, registrationColumns)
	reg, err := scanRegistration(rr.db.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: registration %s", core.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get registration: %v", err)
	}
	return reg, nil
}

// ListRegistrationsForUser returns every registration of a user, newest
// registration first. Callers filter and re-sort for their own views.
func (rr *RegistrationRepo) ListRegistrationsForUser(userID string) ([]core.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE user_id = $1 ORDER BY registered_at DESC`, registrationColumns)
	return rr.queryRegistrations(query, userID)
}

// HasActiveRegistration reports whether the user has a registration with
// status 'registered' for the event.
func (rr *RegistrationRepo) HasActiveRegistration(userID, eventID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE user_id = $1 AND event_id = $2 AND status = 'registered'`
	if err := rr.db.db.QueryRow(query, userID, eventID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check registration: %v", err)
	}
	return count > 0, nil
}

// CountActiveRegistrations counts status 'registered' rows for one event.
func (rr *RegistrationRepo) CountActiveRegistrations(eventID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'registered'`
	if err := rr.db.db.QueryRow(query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %v", err)
	}
	return count, nil
}

// ListRegistrationsForEvents returns all registrations of the given events,
// oldest first, for staff views.
func (rr *RegistrationRepo) ListRegistrationsForEvents(eventIDs []string) ([]core.Registration, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE event_id = ANY($1) ORDER BY registered_at ASC`, registrationColumns)
	return rr.queryRegistrations(query, pq.Array(eventIDs))
}

// CancelRegistration flips status to cancelled and stamps the time. The
// record is retained, never deleted.
func (rr *RegistrationRepo) CancelRegistration(id string, at time.Time) error {
	query := `UPDATE registrations SET status = 'cancelled', cancelled_at = $2 WHERE id = $1`
	result, err := rr.db.db.Exec(query, id, at)
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: registration %s", core.ErrNotFound, id)
	}
	return nil
}

func (rr *RegistrationRepo) queryRegistrations(query string, args ...interface{}) ([]core.Registration, error) {
	rows, err := rr.db.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %v", err)
	}
	defer rows.Close()

	var regs []core.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %v", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

func scanRegistration(row rowScanner) (*core.Registration, error) {
	var (
		reg         core.Registration
		cancelledAt sql.NullTime
		ticketURL   sql.NullString
	)
	err := row.Scan(
		&reg.ID, &reg.UserID, &reg.UserEmail, &reg.UserName, &reg.EventID, &reg.EventName,
		&reg.EventDate, &reg.EventVenue, &reg.EventSource, &reg.RegisteredAt, &reg.Status,
		&cancelledAt, &reg.TicketCount, &ticketURL)
	if err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		reg.CancelledAt = &cancelledAt.Time
	}
	reg.TicketURL = ticketURL.String
	return &reg, nil
}
