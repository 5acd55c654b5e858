// Package ticketmaster adapts the Ticketmaster Discovery API to the
// platform's unified event model.
package ticketmaster

// APIResponse is the Discovery API list envelope. A missing _embedded key
// means zero results, not an error.
type APIResponse struct {
	Embedded *struct {
		Events []APIEvent `json:"events"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

// APIEvent is the subset of the provider event schema this system reads.
// Every field past id/name is optional on the wire.
type APIEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Info       string `json:"info"`
	PleaseNote string `json:"pleaseNote"`

	Images []struct {
		URL string `json:"url"`
	} `json:"images"`

	Sales *struct {
		Public struct {
			StartDateTime string `json:"startDateTime"`
			EndDateTime   string `json:"endDateTime"`
		} `json:"public"`
	} `json:"sales"`

	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
			DateTime  string `json:"dateTime"`
		} `json:"start"`
		End *struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
			DateTime  string `json:"dateTime"`
		} `json:"end"`
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	} `json:"dates"`

	Classifications []APIClassification `json:"classifications"`

	PriceRanges []struct {
		Type     string  `json:"type"`
		Currency string  `json:"currency"`
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
	} `json:"priceRanges"`

	Embedded *struct {
		Venues []APIVenue `json:"venues"`
	} `json:"_embedded"`
}

// APIClassification is one provider taxonomy entry.
type APIClassification struct {
	Segment *struct {
		Name string `json:"name"`
	} `json:"segment"`
	Genre *struct {
		Name string `json:"name"`
	} `json:"genre"`
	SubGenre *struct {
		Name string `json:"name"`
	} `json:"subGenre"`
}

// APIVenue is the subset of the provider venue schema this system reads.
type APIVenue struct {
	Name string `json:"name"`
	City *struct {
		Name string `json:"name"`
	} `json:"city"`
	State *struct {
		Name string `json:"name"`
	} `json:"state"`
	Country *struct {
		Name string `json:"name"`
	} `json:"country"`
	Address *struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	Location *struct {
		Longitude string `json:"longitude"`
		Latitude  string `json:"latitude"`
	} `json:"location"`
}
