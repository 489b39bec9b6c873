package episode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnix/ner-radio/internal/domain"
	"github.com/arnix/ner-radio/internal/ner"
	"github.com/arnix/ner-radio/internal/storage"
)

// ErrNoBroadcast means the program had no show entry for the requested date.
// A valid outcome for fill-up mode, a failed lookup for single-day mode.
var ErrNoBroadcast = errors.New("program has no broadcast on this date")

// Options bounds the waiting behavior of the acquisition loop.
type Options struct {
	// RetryWait is the pause between re-queries while today's recording
	// is not yet published.
	RetryWait time.Duration

	// MaxRetries bounds the number of queries for an unpublished
	// recording before giving up.
	MaxRetries int
}

// Processor drives the per-day acquisition pipeline: wait for the day,
// resolve the show entry, wait for publication, download, tag, archive.
type Processor struct {
	source     Source
	fetcher    Fetcher
	tagger     Tagger
	store      storage.Storage
	notifier   Notifier
	retryWait  time.Duration
	maxRetries int

	// injected in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(source Source, fetcher Fetcher, tagger Tagger, store storage.Storage, notifier Notifier, opts Options) *Processor {
	if opts.RetryWait <= 0 {
		opts.RetryWait = 600 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 6
	}
	return &Processor{
		source:     source,
		fetcher:    fetcher,
		tagger:     tagger,
		store:      store,
		notifier:   notifier,
		retryWait:  opts.RetryWait,
		maxRetries: opts.MaxRetries,
		now:        time.Now,
		sleep:      sleepContext,
	}
}

// FetchDay acquires one episode. Future-dated days are waited for; a show
// entry whose recording is not yet published is re-queried with a fixed
// pause, bounded by MaxRetries, but only when the day is today — for past
// days ErrNotYetPublished is terminal.
func (p *Processor) FetchDay(ctx context.Context, programName string, day domain.CalendarDay, outputFolder string) error {
	for {
		now := p.now()
		if !now.Before(day.Time()) {
			break
		}
		wait := day.Time().Sub(now) + 2*time.Second
		slog.Info("Target day has not arrived yet, waiting", "program", programName, "day", day, "wait", wait)
		if err := p.sleep(ctx, wait); err != nil {
			return err
		}
	}

	var entry *domain.ShowEntry
	var audioURL string
	for attempt := 1; ; attempt++ {
		var err error
		entry, err = p.source.ShowOn(ctx, programName, day, true)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("%w: %s on %s", ErrNoBroadcast, programName, day)
		}

		audioURL, err = p.source.AudioURL(entry)
		if err == nil {
			break
		}
		if !errors.Is(err, ner.ErrNotYetPublished) {
			return err
		}
		// The wait loop above already handled future days, so a non-today
		// day is in the past and its recording will not appear by waiting.
		if day.ISO() != domain.DayFromTime(p.now()).ISO() {
			return err
		}
		if attempt >= p.maxRetries {
			return err
		}
		slog.Info("Audio not yet published, retrying", "program", programName, "day", day, "wait", p.retryWait)
		if err := p.sleep(ctx, p.retryWait); err != nil {
			return err
		}
	}

	if err := p.store.EnsureDir(outputFolder); err != nil {
		return err
	}

	target := domain.DownloadTarget{ProgramName: programName, Day: day, OutputFolder: outputFolder}
	slog.Info("Downloading episode", "title", entry.Title, "url", audioURL)
	result, err := p.fetcher.Fetch(ctx, audioURL, target.Path())
	if err != nil {
		return err
	}
	if result.Truncated() {
		slog.Warn("Episode shorter than declared, keeping it anyway",
			"path", result.Path, "received", result.BytesReceived, "expected", result.BytesExpected)
	}

	if err := p.tagger.WriteTags(target.Path(), entry, day, audioURL); err != nil {
		return err
	}

	// The local file is complete at this point; a failed archive upload
	// should not undo the download.
	if err := p.store.Archive(ctx, target.Path()); err != nil {
		slog.Warn("Failed to archive episode", "path", target.Path(), "error", err)
	}

	if p.notifier != nil {
		p.notifier.PlayCompletionSound()
	}
	slog.Info("Episode complete", "path", target.Path())
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
