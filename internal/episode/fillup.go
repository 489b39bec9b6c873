package episode

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arnix/ner-radio/internal/domain"
	"github.com/arnix/ner-radio/internal/ner"
)

// FillUp backfills missing episodes over the trailing lookbackDays window,
// today included. Days outside the program's broadcast schedule are skipped,
// as are days whose episode file already exists — file presence is the only
// completion marker, so an interrupted run resumes where it stopped.
func (p *Processor) FillUp(ctx context.Context, programName, outputFolder string, lookbackDays int) error {
	days, err := p.source.BroadcastDays(ctx, programName)
	if err != nil {
		return err
	}
	slog.Info("Derived broadcast days", "program", programName, "days", days)

	today := domain.DayFromTime(p.now())
	for diff := lookbackDays; diff >= 0; diff-- {
		day := domain.DayFromTime(today.Time().AddDate(0, 0, -diff))
		if !days.Contains(day.ISOWeekday()) {
			continue
		}

		target := domain.DownloadTarget{ProgramName: programName, Day: day, OutputFolder: outputFolder}
		if p.store.Exists(target.Path()) {
			slog.Info("Episode already downloaded", "path", target.Path())
			continue
		}

		if err := p.FetchDay(ctx, programName, day, outputFolder); err != nil {
			if errors.Is(err, ErrNoBroadcast) || errors.Is(err, ner.ErrNotYetPublished) {
				slog.Info("Skipping day", "day", day, "reason", err)
				continue
			}
			return err
		}
	}
	return nil
}
