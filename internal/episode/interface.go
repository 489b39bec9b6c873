package episode

import (
	"context"

	"github.com/arnix/ner-radio/internal/domain"
	"github.com/arnix/ner-radio/internal/downloader"
)

// Source resolves a program's show entries and audio URLs.
type Source interface {
	ShowOn(ctx context.Context, programName string, day domain.CalendarDay, forceReload bool) (*domain.ShowEntry, error)
	BroadcastDays(ctx context.Context, programName string) (domain.BroadcastDaySet, error)
	AudioURL(entry *domain.ShowEntry) (string, error)
}

// Fetcher streams an audio URL into a destination file.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) (*downloader.Result, error)
}

// Tagger writes episode metadata onto a downloaded file.
type Tagger interface {
	WriteTags(path string, entry *domain.ShowEntry, day domain.CalendarDay, audioURL string) error
}

// Notifier signals a finished episode.
type Notifier interface {
	PlayCompletionSound()
}
