// Package api fetches the resources a protokoll is assembled from.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fscs/prototool/pkg/core"
)

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Is makes every HTTPError match core.ErrNetwork, and 404s also core.ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case core.ErrNetwork:
		return true
	case core.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client talks to the council API below BaseURL.
type Client struct {
	BaseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL.
// A nil httpClient uses http.DefaultClient, a nil logger slog.Default().
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint url %q: scheme and host required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{BaseURL: u, http: httpClient, logger: logger}, nil
}

// FetchMeeting resolves the next meeting at or after asOf.
func (c *Client) FetchMeeting(ctx context.Context, asOf time.Time) (core.Meeting, error) {
	query := url.Values{}
	query.Set("timestamp", asOf.Format(time.RFC3339))
	query.Set("limit", "1")

	var meetings []core.Meeting
	if err := c.getJSON(ctx, "api/sitzungen/after/", query, &meetings); err != nil {
		return core.Meeting{}, fmt.Errorf("unable to fetch next sitzung: %w", err)
	}

	if len(meetings) == 0 {
		return core.Meeting{}, fmt.Errorf("no sitzung after %s: %w", asOf.Format(time.RFC3339), core.ErrNotFound)
	}

	return meetings[0], nil
}

// FetchAgendaItems returns the agenda of a meeting sorted by weight.
// Items with equal weight keep the order the API returned them in.
func (c *Client) FetchAgendaItems(ctx context.Context, meetingID uuid.UUID) ([]core.AgendaItem, error) {
	var items []core.AgendaItem
	if err := c.getJSON(ctx, "api/sitzungen/"+meetingID.String()+"/tops/", nil, &items); err != nil {
		return nil, fmt.Errorf("unable to fetch tops: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Weight < items[j].Weight
	})

	return items, nil
}

// FetchPersonsByRole returns every person holding role.
func (c *Client) FetchPersonsByRole(ctx context.Context, role string) ([]core.Person, error) {
	query := url.Values{}
	query.Set("role", role)

	var persons []core.Person
	if err := c.getJSON(ctx, "api/persons/by-role/", query, &persons); err != nil {
		return nil, fmt.Errorf("unable to fetch räte: %w", err)
	}

	return persons, nil
}

// FetchAbsences returns the absence records for a meeting, or for a date window when
// scope names no meeting.
func (c *Client) FetchAbsences(ctx context.Context, scope core.AbsenceScope) ([]core.AbsenceRecord, error) {
	endpoint := "api/abmeldungen/between/"
	var query url.Values

	if scope.MeetingID != uuid.Nil {
		endpoint = "api/sitzungen/" + scope.MeetingID.String() + "/abmeldungen/"
	} else {
		query = url.Values{}
		query.Set("start", scope.Start.Format("2006-01-02"))
		query.Set("end", scope.End.Format("2006-01-02"))
	}

	var records []core.AbsenceRecord
	if err := c.getJSON(ctx, endpoint, query, &records); err != nil {
		return nil, fmt.Errorf("unable to fetch abmeldungen: %w", err)
	}

	return records, nil
}

// FetchCalendarEvents returns the upcoming calendar events.
func (c *Client) FetchCalendarEvents(ctx context.Context) ([]core.CalendarEvent, error) {
	var events []core.CalendarEvent
	if err := c.getJSON(ctx, "api/calendar/", nil, &events); err != nil {
		return nil, fmt.Errorf("unable to fetch events: %w", err)
	}

	return events, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	u := c.BaseURL.ResolveReference(ref)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "url", u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response", "url", u.String(), "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, URL: u.String()}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", core.ErrDecode, err)
	}

	return nil
}

var _ core.Source = (*Client)(nil)
