package persistance

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/lib/pq"
)

type EventRepo struct {
	db *Database
}

func NewEventRepo(d *Database) EventRepo {
	return EventRepo{db: d}
}

const eventColumns = `id, name, description, start_date, end_date,
	venue_name, venue_address, venue_city, venue_state, venue_country, venue_latitude, venue_longitude,
	images, category, price_min, price_max, price_currency,
	status, created_by, created_at, updated_at, is_public, capacity, available_tickets, tags`

// CreateEvent stores a platform event. The caller fills every field
// including the generated id.
func (er *EventRepo) CreateEvent(event *core.UnifiedEvent) error {
	query := `
		INSERT INTO events (id, name, description, start_date, end_date,
			venue_name, venue_address, venue_city, venue_state, venue_country, venue_latitude, venue_longitude,
			images, category, price_min, price_max, price_currency,
			status, created_by, created_at, updated_at, is_public, capacity, available_tickets, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`

	priceMin, priceMax, priceCurrency := priceColumns(event.Price)
	_, err := er.db.db.Exec(query,
		event.ID, event.Name, event.Description, event.StartDate, nullString(event.EndDate),
		event.Venue.Name, event.Venue.Address, event.Venue.City, nullString(event.Venue.State), event.Venue.Country,
		event.Venue.Latitude, event.Venue.Longitude,
		pq.Array(event.Images), event.Category, priceMin, priceMax, priceCurrency,
		event.Status, event.CreatedBy, parseTimestamp(event.CreatedAt), parseTimestamp(event.UpdatedAt),
		derefBool(event.IsPublic), derefInt(event.Capacity), derefInt(event.AvailableTickets), pq.Array(event.Tags))
	if err != nil {
		return fmt.Errorf("failed to create event: %v", err)
	}
	return nil
}

// GetEventByID retrieves a platform event.
func (er *EventRepo) GetEventByID(id string) (*core.UnifiedEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	event, err := scanEvent(er.db.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: event %s", core.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get event: %v", err)
	}
	return event, nil
}

// ListEvents retrieves platform events sorted by start date ascending.
func (er *EventRepo) ListEvents(filter core.PlatformEventFilter) ([]core.UnifiedEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE 1=1`, eventColumns)

	var args []interface{}
	argIndex := 1

	if filter.CreatedBy != "" {
		query += fmt.Sprintf(" AND created_by = $%d", argIndex)
		args = append(args, filter.CreatedBy)
		argIndex++
	}
	if filter.PublicOnly {
		query += " AND is_public = TRUE"
	}

	query += " ORDER BY start_date ASC"

	rows, err := er.db.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %v", err)
	}
	defer rows.Close()

	var events []core.UnifiedEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %v", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// UpdateEvent writes back a fully merged platform event.
func (er *EventRepo) UpdateEvent(event *core.UnifiedEvent) error {
	query := `
		UPDATE events SET name = $2, description = $3, start_date = $4, end_date = $5,
			venue_name = $6, venue_address = $7, venue_city = $8, venue_state = $9, venue_country = $10,
			venue_latitude = $11, venue_longitude = $12,
			images = $13, category = $14, price_min = $15, price_max = $16, price_currency = $17,
			status = $18, updated_at = $19, is_public = $20, capacity = $21, available_tickets = $22, tags = $23
		WHERE id = $1`

	priceMin, priceMax, priceCurrency := priceColumns(event.Price)
	result, err := er.db.db.Exec(query,
		event.ID, event.Name, event.Description, event.StartDate, nullString(event.EndDate),
		event.Venue.Name, event.Venue.Address, event.Venue.City, nullString(event.Venue.State), event.Venue.Country,
		event.Venue.Latitude, event.Venue.Longitude,
		pq.Array(event.Images), event.Category, priceMin, priceMax, priceCurrency,
		event.Status, parseTimestamp(event.UpdatedAt),
		derefBool(event.IsPublic), derefInt(event.Capacity), derefInt(event.AvailableTickets), pq.Array(event.Tags))
	if err != nil {
		return fmt.Errorf("failed to update event: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: event %s", core.ErrNotFound, event.ID)
	}
	return nil
}

// DeleteEvent removes a platform event.
func (er *EventRepo) DeleteEvent(id string) error {
	result, err := er.db.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: event %s", core.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*core.UnifiedEvent, error) {
	var (
		event                              core.UnifiedEvent
		endDate, venueState, priceCurrency sql.NullString
		venueLat, venueLon                 sql.NullFloat64
		priceMin, priceMax                 sql.NullFloat64
		createdAt, updatedAt               time.Time
		isPublic                           bool
		capacity, availableTickets         int
	)

	err := row.Scan(
		&event.ID, &event.Name, &event.Description, &event.StartDate, &endDate,
		&event.Venue.Name, &event.Venue.Address, &event.Venue.City, &venueState, &event.Venue.Country,
		&venueLat, &venueLon,
		pq.Array(&event.Images), &event.Category, &priceMin, &priceMax, &priceCurrency,
		&event.Status, &event.CreatedBy, &createdAt, &updatedAt,
		&isPublic, &capacity, &availableTickets, pq.Array(&event.Tags))
	if err != nil {
		return nil, err
	}

	event.Source = core.SourcePlatform
	event.EndDate = endDate.String
	event.Venue.State = venueState.String
	if venueLat.Valid {
		event.Venue.Latitude = &venueLat.Float64
	}
	if venueLon.Valid {
		event.Venue.Longitude = &venueLon.Float64
	}
	if priceCurrency.Valid {
		event.Price = &core.Price{Min: priceMin.Float64, Max: priceMax.Float64, Currency: priceCurrency.String}
	}
	if event.Images == nil {
		event.Images = []string{}
	}
	event.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	event.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	event.IsPublic = &isPublic
	event.Capacity = &capacity
	event.AvailableTickets = &availableTickets
	return &event, nil
}

func priceColumns(p *core.Price) (interface{}, interface{}, interface{}) {
	if p == nil {
		return nil, nil, nil
	}
	return p.Min, p.Max, p.Currency
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func parseTimestamp(s string) time.Time {
	return core.ParseISO(s)
}
