package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// Query narrows a provider event search. Category is a platform category
// name; it is translated to the provider's segment taxonomy before sending.
type Query struct {
	City     string
	Keyword  string
	Category string
	Page     int
	Size     int
}

// Client is a single-attempt Discovery API client. Failures of any kind
// wrap core.ErrUpstreamUnavailable; callers decide whether to degrade or
// surface.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// SearchEvents fetches one provider page of upcoming events matching the
// query. The provider paginates this leg itself; no client-side
// re-pagination happens here.
func (c *Client) SearchEvents(ctx context.Context, q Query) (*core.EventPage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: Ticketmaster API key not configured", core.ErrUpstreamUnavailable)
	}

	size := q.Size
	if size <= 0 {
		size = 20
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("size", strconv.Itoa(size))
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("sort", "date,asc")
	// Only upcoming events; the aggregation layer relies on this instead of
	// date-filtering the external leg itself.
	params.Set("startDateTime", c.now().UTC().Format("2006-01-02T15:04:05Z"))
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.Category != "" {
		if segment, ok := core.SegmentForCategory(q.Category); ok {
			params.Set("classificationName", segment)
		}
	}

	var payload APIResponse
	if err := c.get(ctx, c.baseURL+"/events.json?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	now := c.now()
	page := &core.EventPage{
		Events: []core.UnifiedEvent{},
		Pagination: core.Pagination{
			Page:          payload.Page.Number,
			Size:          payload.Page.Size,
			TotalElements: payload.Page.TotalElements,
			TotalPages:    payload.Page.TotalPages,
		},
	}
	if payload.Embedded == nil {
		return page, nil
	}
	for i := range payload.Embedded.Events {
		page.Events = append(page.Events, transformEvent(&payload.Embedded.Events[i], now))
	}
	return page, nil
}

// GetEvent fetches and normalizes a single provider event. The id may
// carry the unified namespace prefix or be the provider's native id.
func (c *Client) GetEvent(ctx context.Context, id string) (*core.UnifiedEvent, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: Ticketmaster API key not configured", core.ErrUpstreamUnavailable)
	}

	nativeID := strings.TrimPrefix(id, core.TicketmasterIDPrefix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/events/%s.json?apikey=%s", c.baseURL, url.PathEscape(nativeID), url.QueryEscape(c.apiKey)), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: event %s", core.ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: Ticketmaster API error: %d", core.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload APIEvent
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}

	event := transformEvent(&payload, c.now())
	return &event, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("Ticketmaster API returned non-success status")
		return fmt.Errorf("%w: Ticketmaster API error: %d", core.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}
	return nil
}
