package ticketmaster

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvent(t *testing.T, raw string) *APIEvent {
	t.Helper()
	var event APIEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	return &event
}

var fixedNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func TestTransformFullEvent(t *testing.T) {
	event := decodeEvent(t, `{
		"id": "G5vYZ9c1",
		"name": "Jazz Night",
		"url": "https://tickets.example.com/G5vYZ9c1",
		"info": "An evening of jazz.",
		"pleaseNote": "No refunds.",
		"images": [{"url": "https://img.example.com/1.jpg"}, {"url": "https://img.example.com/2.jpg"}],
		"sales": {"public": {"startDateTime": "2025-01-01T10:00:00Z", "endDateTime": "2025-06-01T10:00:00Z"}},
		"dates": {
			"start": {"localDate": "2025-06-01", "localTime": "19:30:00", "dateTime": "2025-06-01T23:30:00Z"},
			"end": {"localDate": "2025-06-02"},
			"status": {"code": "onsale"}
		},
		"classifications": [{"segment": {"name": "Music"}, "genre": {"name": "Jazz"}}],
		"priceRanges": [{"type": "standard", "currency": "USD", "min": 25, "max": 90}],
		"_embedded": {"venues": [{
			"name": "Blue Hall",
			"city": {"name": "Chicago"},
			"state": {"name": "Illinois"},
			"country": {"name": "United States"},
			"address": {"line1": "1 Jazz Way"},
			"location": {"latitude": "41.8781", "longitude": "-87.6298"}
		}]}
	}`)

	got := transformEvent(event, fixedNow)

	assert.Equal(t, "tm_G5vYZ9c1", got.ID)
	assert.Equal(t, core.SourceTicketmaster, got.Source)
	assert.Equal(t, "Jazz Night", got.Name)
	assert.Equal(t, "An evening of jazz.", got.Description)
	assert.Equal(t, "2025-06-01T23:30:00Z", got.StartDate)
	assert.Equal(t, "2025-06-02T23:59:59", got.EndDate)
	assert.Equal(t, core.StatusActive, got.Status)
	assert.Equal(t, core.CategoryMusic, got.Category)

	assert.Equal(t, "Blue Hall", got.Venue.Name)
	assert.Equal(t, "Chicago", got.Venue.City)
	assert.Equal(t, "1 Jazz Way", got.Venue.Address)
	require.NotNil(t, got.Venue.Latitude)
	assert.InDelta(t, 41.8781, *got.Venue.Latitude, 0.0001)

	require.NotNil(t, got.Price)
	assert.Equal(t, 25.0, got.Price.Min)
	assert.Equal(t, 90.0, got.Price.Max)
	assert.Equal(t, "USD", got.Price.Currency)

	assert.Equal(t, []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"}, got.Images)

	require.NotNil(t, got.TicketmasterData)
	assert.Equal(t, "G5vYZ9c1", got.TicketmasterData.OriginalID)
	assert.Equal(t, "https://tickets.example.com/G5vYZ9c1", got.TicketmasterData.URL)
	assert.Len(t, got.TicketmasterData.PriceRanges, 1)
	assert.Equal(t, "2025-01-01T10:00:00Z", got.TicketmasterData.Sales.Public.StartDateTime)
	assert.Equal(t, fixedNow.Format(time.RFC3339), got.LastSynced)

	// Platform-only fields stay absent on an external event.
	assert.Nil(t, got.Capacity)
	assert.Nil(t, got.AvailableTickets)
	assert.Nil(t, got.IsPublic)
}

func TestTransformMinimalEvent(t *testing.T) {
	got := transformEvent(decodeEvent(t, `{
		"id": "x1",
		"name": "Mystery Show",
		"dates": {"start": {"localDate": "2025-07-04"}, "status": {}}
	}`), fixedNow)

	assert.Equal(t, "tm_x1", got.ID)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, "2025-07-04T00:00:00", got.StartDate)
	assert.Equal(t, "", got.EndDate)
	assert.Equal(t, "TBA", got.Venue.Name)
	assert.Equal(t, "", got.Venue.City)
	assert.Nil(t, got.Venue.Latitude)
	assert.Equal(t, core.StatusActive, got.Status)
	assert.Equal(t, core.CategoryMiscellaneous, got.Category)
	assert.Nil(t, got.Price)
	assert.Empty(t, got.Images)
}

func TestTransformStatusCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"onsale", core.StatusActive},
		{"offsale", core.StatusActive},
		{"cancelled", core.StatusCancelled},
		{"postponed", core.StatusPostponed},
		{"rescheduled", core.StatusRescheduled},
		{"", core.StatusActive},
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			got := transformEvent(decodeEvent(t, `{
				"id": "s1", "name": "n",
				"dates": {"start": {"localDate": "2025-07-04"}, "status": {"code": "`+tt.code+`"}}
			}`), fixedNow)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestTransformFallsBackToPleaseNote(t *testing.T) {
	got := transformEvent(decodeEvent(t, `{
		"id": "d1", "name": "n", "pleaseNote": "Doors at 7.",
		"dates": {"start": {"localDate": "2025-07-04", "localTime": "19:00:00"}, "status": {}}
	}`), fixedNow)

	assert.Equal(t, "Doors at 7.", got.Description)
	assert.Equal(t, "2025-07-04T19:00:00", got.StartDate)
}
