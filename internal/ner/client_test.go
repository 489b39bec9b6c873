package ner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnix/ner-radio/internal/domain"
)

type stubFetcher struct {
	page  string
	err   error
	calls int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.page, nil
}

func searchServer(t *testing.T, response string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/programs", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("size"))
		assert.Equal(t, "createdAt", r.URL.Query().Get("order"))
		w.WriteHeader(status)
		fmt.Fprint(w, response)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolveProgram(t *testing.T) {
	server := searchServer(t, `{"count":1,"rows":[{"_id":"abc123","name":"愛的加油站"}]}`, http.StatusOK)
	client := NewClient(server.URL, &stubFetcher{}, ScheduleOptions{})

	program, err := client.ResolveProgram(context.Background(), "愛的加油站")
	require.NoError(t, err)
	assert.Equal(t, "abc123", program.ID)
	assert.Equal(t, server.URL+"/program/abc123", program.DetailURL)
}

func TestResolveProgramAmbiguous(t *testing.T) {
	server := searchServer(t, `{"count":2,"rows":[{"_id":"a"},{"_id":"b"}]}`, http.StatusOK)
	fetcher := &stubFetcher{}
	client := NewClient(server.URL, fetcher, ScheduleOptions{})

	_, err := client.State(context.Background(), "愛的加油站", false)
	assert.ErrorIs(t, err, ErrProgramAmbiguous)

	// The detail page must not be fetched after an ambiguous match.
	assert.Equal(t, 0, fetcher.calls)
}

func TestResolveProgramNoMatches(t *testing.T) {
	server := searchServer(t, `{"count":0,"rows":[]}`, http.StatusOK)
	client := NewClient(server.URL, &stubFetcher{}, ScheduleOptions{})

	_, err := client.ResolveProgram(context.Background(), "不存在的節目")
	assert.ErrorIs(t, err, ErrProgramAmbiguous)
}

func TestResolveProgramEmptyBody(t *testing.T) {
	server := searchServer(t, "", http.StatusOK)
	client := NewClient(server.URL, &stubFetcher{}, ScheduleOptions{})

	_, err := client.ResolveProgram(context.Background(), "愛的加油站")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestResolveProgramServerError(t *testing.T) {
	server := searchServer(t, "oops", http.StatusInternalServerError)
	client := NewClient(server.URL, &stubFetcher{}, ScheduleOptions{})

	_, err := client.ResolveProgram(context.Background(), "愛的加油站")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProgramAmbiguous)
}

func TestStateCaching(t *testing.T) {
	server := searchServer(t, `{"count":1,"rows":[{"_id":"abc123"}]}`, http.StatusOK)
	fetcher := &stubFetcher{page: samplePage(t)}
	client := NewClient(server.URL, fetcher, ScheduleOptions{})

	_, err := client.State(context.Background(), "愛的加油站", false)
	require.NoError(t, err)
	_, err = client.State(context.Background(), "愛的加油站", false)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	// forceReload bypasses and replaces the cached state.
	_, err = client.State(context.Background(), "愛的加油站", true)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestShowOn(t *testing.T) {
	server := searchServer(t, `{"count":1,"rows":[{"_id":"abc123"}]}`, http.StatusOK)
	client := NewClient(server.URL, &stubFetcher{page: samplePage(t)}, ScheduleOptions{})

	entry, err := client.ShowOn(context.Background(), "愛的加油站", domain.CalendarDay{Year: 2021, Month: 9, Day: 11}, false)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "快樂的週末", entry.Title)

	// A day without a broadcast yields no entry and no error.
	entry, err = client.ShowOn(context.Background(), "愛的加油站", domain.CalendarDay{Year: 2021, Month: 9, Day: 13}, false)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestBroadcastDaysFromState(t *testing.T) {
	server := searchServer(t, `{"count":1,"rows":[{"_id":"abc123"}]}`, http.StatusOK)
	client := NewClient(server.URL, &stubFetcher{page: samplePage(t)}, ScheduleOptions{})

	days, err := client.BroadcastDays(context.Background(), "愛的加油站")
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7}, days.Days())
}

func TestAudioURL(t *testing.T) {
	client := NewClient("", &stubFetcher{}, ScheduleOptions{})

	entry := &domain.ShowEntry{
		Date:    time.Date(2021, 9, 11, 8, 0, 0, 0, time.Local).Unix(),
		Program: domain.ProgramRef{Name: "愛的加油站"},
		Audio:   &domain.Audio{Channel: &domain.AudioChannel{ID: "613bff966a9c870008f8dd68"}},
	}

	url, err := client.AudioURL(entry)
	require.NoError(t, err)
	assert.Equal(t, "https://www.ner.gov.tw/api/audio/613bff966a9c870008f8dd68.mp3", url)
}

func TestAudioURLNotYetPublished(t *testing.T) {
	client := NewClient("", &stubFetcher{}, ScheduleOptions{})

	for _, entry := range []*domain.ShowEntry{
		{Program: domain.ProgramRef{Name: "愛的加油站"}},
		{Program: domain.ProgramRef{Name: "愛的加油站"}, Audio: &domain.Audio{}},
	} {
		_, err := client.AudioURL(entry)
		assert.ErrorIs(t, err, ErrNotYetPublished)
	}
}

func TestAudioURLNilEntry(t *testing.T) {
	client := NewClient("", &stubFetcher{}, ScheduleOptions{})

	url, err := client.AudioURL(nil)
	assert.NoError(t, err)
	assert.Empty(t, url)
}
