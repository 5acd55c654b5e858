package ticketmaster

import (
	"strconv"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
)

// statusCodes maps provider status codes onto the unified status enum.
// Unknown codes read as active.
var statusCodes = map[string]string{
	"onsale":      core.StatusActive,
	"cancelled":   core.StatusCancelled,
	"postponed":   core.StatusPostponed,
	"rescheduled": core.StatusRescheduled,
}

// transformEvent maps one provider event onto the unified shape. It is
// total over the documented provider schema: absent optional fields degrade
// to the documented defaults and never propagate as nulls.
func transformEvent(tm *APIEvent, now time.Time) core.UnifiedEvent {
	event := core.UnifiedEvent{
		ID:          core.TicketmasterIDPrefix + tm.ID,
		Name:        tm.Name,
		Description: description(tm),
		StartDate:   startDate(tm),
		EndDate:     endDate(tm),
		Venue:       venue(tm),
		Images:      images(tm),
		Category:    core.NormalizeCategory(firstClassification(tm)),
		Price:       price(tm),
		Status:      status(tm),
		Source:      core.SourceTicketmaster,
		LastSynced:  now.UTC().Format(time.RFC3339),
	}

	data := &core.TicketmasterData{
		OriginalID: tm.ID,
		URL:        tm.URL,
		TicketURL:  tm.URL,
	}
	for _, pr := range tm.PriceRanges {
		data.PriceRanges = append(data.PriceRanges, core.PriceRange{
			Type:     pr.Type,
			Currency: pr.Currency,
			Min:      pr.Min,
			Max:      pr.Max,
		})
	}
	if tm.Sales != nil {
		data.Sales.Public = core.SalesWindow{
			StartDateTime: tm.Sales.Public.StartDateTime,
			EndDateTime:   tm.Sales.Public.EndDateTime,
		}
	}
	for i := range tm.Classifications {
		if c := classification(&tm.Classifications[i]); c != nil {
			data.Classifications = append(data.Classifications, *c)
		}
	}
	event.TicketmasterData = data

	return event
}

func description(tm *APIEvent) string {
	if tm.Info != "" {
		return tm.Info
	}
	return tm.PleaseNote
}

// startDate prefers the provider's combined timestamp and otherwise
// synthesizes one from the local date/time pair, defaulting a missing time
// to midnight.
func startDate(tm *APIEvent) string {
	if tm.Dates.Start.DateTime != "" {
		return tm.Dates.Start.DateTime
	}
	localTime := tm.Dates.Start.LocalTime
	if localTime == "" {
		localTime = "00:00:00"
	}
	return tm.Dates.Start.LocalDate + "T" + localTime
}

// endDate mirrors startDate with an end-of-day default, and stays empty
// when the provider gave no end date at all.
func endDate(tm *APIEvent) string {
	end := tm.Dates.End
	if end == nil {
		return ""
	}
	if end.DateTime != "" {
		return end.DateTime
	}
	if end.LocalDate == "" {
		return ""
	}
	localTime := end.LocalTime
	if localTime == "" {
		localTime = "23:59:59"
	}
	return end.LocalDate + "T" + localTime
}

func venue(tm *APIEvent) core.Venue {
	v := core.Venue{Name: "TBA"}
	if tm.Embedded == nil || len(tm.Embedded.Venues) == 0 {
		return v
	}
	av := tm.Embedded.Venues[0]
	if av.Name != "" {
		v.Name = av.Name
	}
	if av.Address != nil {
		v.Address = av.Address.Line1
	}
	if av.City != nil {
		v.City = av.City.Name
	}
	if av.State != nil {
		v.State = av.State.Name
	}
	if av.Country != nil {
		v.Country = av.Country.Name
	}
	if av.Location != nil {
		if lat, err := strconv.ParseFloat(av.Location.Latitude, 64); err == nil {
			v.Latitude = &lat
		}
		if lon, err := strconv.ParseFloat(av.Location.Longitude, 64); err == nil {
			v.Longitude = &lon
		}
	}
	return v
}

func images(tm *APIEvent) []string {
	urls := make([]string, 0, len(tm.Images))
	for _, img := range tm.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

func price(tm *APIEvent) *core.Price {
	if len(tm.PriceRanges) == 0 {
		return nil
	}
	return &core.Price{
		Min:      tm.PriceRanges[0].Min,
		Max:      tm.PriceRanges[0].Max,
		Currency: tm.PriceRanges[0].Currency,
	}
}

func status(tm *APIEvent) string {
	if s, ok := statusCodes[tm.Dates.Status.Code]; ok {
		return s
	}
	return core.StatusActive
}

func firstClassification(tm *APIEvent) *core.Classification {
	if len(tm.Classifications) == 0 {
		return nil
	}
	return classification(&tm.Classifications[0])
}

func classification(ac *APIClassification) *core.Classification {
	c := &core.Classification{}
	if ac.Segment != nil {
		c.Segment = ac.Segment.Name
	}
	if ac.Genre != nil {
		c.Genre = ac.Genre.Name
	}
	if ac.SubGenre != nil {
		c.SubGenre = ac.SubGenre.Name
	}
	return c
}
