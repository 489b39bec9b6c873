package ner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/arnix/ner-radio/internal/domain"
)

// DefaultBaseURL is the station's public site.
const DefaultBaseURL = "https://www.ner.gov.tw"

// PageFetcher retrieves a web page body.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Program is the single search match for a program name.
type Program struct {
	ID        string
	DetailURL string
}

// Client talks to the station's search API and program pages. Decoded page
// states are cached per program name for the lifetime of the client; the
// cache is bypassed with forceReload. Not safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	fetcher  PageFetcher
	schedule ScheduleOptions
	states   map[string]*State
}

func NewClient(baseURL string, fetcher PageFetcher, schedule ScheduleOptions) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		fetcher:  fetcher,
		schedule: schedule,
		states:   make(map[string]*State),
	}
}

// ResolveProgram queries the search API for a program name and expects
// exactly one match.
func (c *Client) ResolveProgram(ctx context.Context, name string) (*Program, error) {
	searchURL := fmt.Sprintf(
		"%s/api/programs?size=12&page=1&order=createdAt&desc=true&q=%s&onShelf=true&overview=true",
		c.baseURL, url.QueryEscape(name),
	)
	slog.Debug("Searching for program", "name", name, "url", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("program search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("program search failed with status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("program search failed: %w", err)
	}
	if len(body) == 0 {
		return nil, ErrNoData
	}

	count := gjson.GetBytes(body, "count")
	if !count.Exists() || count.Int() != 1 {
		return nil, fmt.Errorf("%w: %q matched %d programs", ErrProgramAmbiguous, name, count.Int())
	}
	id := gjson.GetBytes(body, "rows.0._id").String()
	if id == "" {
		return nil, fmt.Errorf("%w: match for %q has no id", ErrProgramAmbiguous, name)
	}

	return &Program{ID: id, DetailURL: c.baseURL + "/program/" + id}, nil
}

// State returns the decoded page state for a program, fetching it on first
// use. forceReload refetches the page and replaces the cached state.
func (c *Client) State(ctx context.Context, programName string, forceReload bool) (*State, error) {
	if st, ok := c.states[programName]; ok && !forceReload {
		return st, nil
	}

	program, err := c.ResolveProgram(ctx, programName)
	if err != nil {
		return nil, err
	}
	slog.Debug("Fetching program page", "url", program.DetailURL)

	page, err := c.fetcher.Fetch(ctx, program.DetailURL)
	if err != nil {
		return nil, err
	}
	st, err := ExtractState(page)
	if err != nil {
		return nil, err
	}

	c.states[programName] = st
	return st, nil
}

// ShowOn returns the program's show entry for the given day, or nil when the
// program had no broadcast that day.
func (c *Client) ShowOn(ctx context.Context, programName string, day domain.CalendarDay, forceReload bool) (*domain.ShowEntry, error) {
	st, err := c.State(ctx, programName, forceReload)
	if err != nil {
		return nil, err
	}
	shows, err := st.ShowList()
	if err != nil {
		return nil, err
	}
	return FindShowOnDate(shows, day), nil
}

// BroadcastDays derives the program's weekly broadcast days from its
// schedule description.
func (c *Client) BroadcastDays(ctx context.Context, programName string) (domain.BroadcastDaySet, error) {
	st, err := c.State(ctx, programName, false)
	if err != nil {
		return nil, err
	}
	text, err := st.ScheduleText()
	if err != nil {
		return nil, err
	}
	return ParseBroadcastDays(text, c.schedule)
}

// AudioURL returns the download URL of a show's published recording. A nil
// entry yields an empty URL with no error. ErrNotYetPublished is returned
// when the entry exists but carries no audio yet.
func (c *Client) AudioURL(entry *domain.ShowEntry) (string, error) {
	if entry == nil {
		return "", nil
	}
	if entry.Audio == nil || entry.Audio.Channel == nil || entry.Audio.Channel.ID == "" {
		day := domain.DayFromTime(time.Unix(entry.Date, 0))
		return "", fmt.Errorf("%w: [%s, %s]", ErrNotYetPublished, entry.Program.Name, day.ISO())
	}
	return c.baseURL + "/api/audio/" + entry.Audio.Channel.ID + ".mp3", nil
}
