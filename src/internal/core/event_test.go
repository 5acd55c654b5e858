package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTicketmasterID(t *testing.T) {
	assert.True(t, IsTicketmasterID("tm_G5vYZ9c1"))
	assert.False(t, IsTicketmasterID("b6a7c1be-5c3f-4d29-9f30-000000000000"))
	assert.False(t, IsTicketmasterID(""))
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: "2025-03-01T19:30:00Z",
			want:  time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC),
		},
		{
			name:  "zoneless datetime",
			input: "2025-03-01T19:30:00",
			want:  time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2025-03-01",
			want:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "garbage is zero",
			input: "next friday",
			want:  time.Time{},
		},
		{
			name:  "empty is zero",
			input: "",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseISO(tt.input)), "got %v", ParseISO(tt.input))
		})
	}
}

func TestEventTimes(t *testing.T) {
	event := UnifiedEvent{StartDate: "2025-03-01T19:30:00", EndDate: ""}
	assert.Equal(t, time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC), event.StartTime())
	assert.True(t, event.EndTime().IsZero())
}
