package episode

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnix/ner-radio/internal/domain"
)

func TestFillUp(t *testing.T) {
	// "Today" is Saturday 2021-09-11 and the program airs on weekends, so a
	// seven-day window covers 9/4, 9/5 and 9/11.
	now := time.Date(2021, 9, 11, 9, 0, 0, 0, time.Local)
	source := &fakeSource{
		days: domain.NewBroadcastDaySet(6, 7),
		entries: map[string]*domain.ShowEntry{
			"2021-09-04": entryFor(domain.CalendarDay{Year: 2021, Month: 9, Day: 4}, "愛的加油站"),
			"2021-09-05": entryFor(domain.CalendarDay{Year: 2021, Month: 9, Day: 5}, "愛的加油站"),
			"2021-09-11": entryFor(domain.CalendarDay{Year: 2021, Month: 9, Day: 11}, "愛的加油站"),
		},
	}
	fetcher := &fakeFetcher{}
	proc, _ := newTestProcessor(source, fetcher, &fakeTagger{}, &fakeNotifier{}, now)

	out := t.TempDir()
	existing := filepath.Join(out, "2021.0904.愛的加油站.mp3")
	require.NoError(t, os.WriteFile(existing, []byte("audio"), 0o644))

	err := proc.FillUp(context.Background(), "愛的加油站", out, 7)
	require.NoError(t, err)

	// 9/4 already exists; only the two missing weekend days are fetched,
	// oldest first.
	assert.Equal(t, []string{
		filepath.Join(out, "2021.0905.愛的加油站.mp3"),
		filepath.Join(out, "2021.0911.愛的加油站.mp3"),
	}, fetcher.calls)
}

func TestFillUpSkipsDaysWithoutBroadcast(t *testing.T) {
	// The schedule says weekends but 9/5 has no show entry; that day is
	// skipped and the walk continues.
	now := time.Date(2021, 9, 11, 9, 0, 0, 0, time.Local)
	source := &fakeSource{
		days: domain.NewBroadcastDaySet(6, 7),
		entries: map[string]*domain.ShowEntry{
			"2021-09-11": entryFor(domain.CalendarDay{Year: 2021, Month: 9, Day: 11}, "愛的加油站"),
		},
	}
	fetcher := &fakeFetcher{}
	proc, _ := newTestProcessor(source, fetcher, &fakeTagger{}, &fakeNotifier{}, now)

	out := t.TempDir()
	err := proc.FillUp(context.Background(), "愛的加油站", out, 6)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(out, "2021.0911.愛的加油站.mp3")}, fetcher.calls)
}
