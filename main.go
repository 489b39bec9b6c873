package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/arnix/ner-radio/config"
	"github.com/arnix/ner-radio/internal/domain"
	"github.com/arnix/ner-radio/internal/downloader"
	"github.com/arnix/ner-radio/internal/episode"
	"github.com/arnix/ner-radio/internal/ner"
	"github.com/arnix/ner-radio/internal/notify"
	"github.com/arnix/ner-radio/internal/scraper"
	"github.com/arnix/ner-radio/internal/storage"
	"github.com/arnix/ner-radio/internal/tagger"
)

func main() {
	programName := flag.String("n", "", "Program name to be downloaded")
	date := flag.String("d", "", "Date to be downloaded (YYYY-M-D, YYYY.MMDD, YYYY/M/D or YYYY.M.D; defaults to today)")
	outputFolder := flag.String("o", "", "Output folder (defaults to ~/Radio/<program>)")
	getShow := flag.Bool("g", false, "Download the program for one day")
	fillUp := flag.Bool("f", false, "Fill up all shows that have not been downloaded")
	dumpJSON := flag.Bool("j", false, "Print the JSON entry of the show for a day")
	listModules := flag.Bool("l", false, "List required modules")
	debugMode := flag.Bool("e", false, "Enable debug logging")
	configPath := flag.String("c", "config.yaml", "Config file path")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	if len(os.Args) == 1 {
		flag.Usage()
		os.Exit(0)
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.Level(cfg.LogLevel)
	if *debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if *listModules {
		printModules()
		os.Exit(0)
	}

	if *programName == "" {
		slog.Error("Program name is missing")
		os.Exit(1)
	}

	day := domain.Today()
	if *date != "" {
		day, err = domain.ParseDay(*date)
		if err != nil {
			slog.Error("Invalid date", "error", err)
			os.Exit(1)
		}
	}

	folder, err := resolveOutputFolder(*outputFolder, cfg.OutputDir, *programName)
	if err != nil {
		slog.Error("Failed to resolve output folder", "error", err)
		os.Exit(1)
	}

	// Interrupts cancel the run context; the downloader removes any
	// in-progress file on its way out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := ner.NewClient(cfg.BaseURL, scraper.New(), ner.ScheduleOptions{
		LegacyMonSatRange: cfg.LegacyMonSatRange,
	})

	store, err := storage.New(ctx, cfg.Storage.Type, cfg.Storage.Bucket, cfg.Storage.ObjectPrefix, cfg.Storage.CredentialsFile)
	if err != nil {
		slog.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	processor := episode.New(
		client,
		downloader.New(cfg.StrictDownload),
		tagger.New(),
		store,
		notify.New(cfg.Notify.Player, cfg.Notify.Sound),
		episode.Options{
			RetryWait:  time.Duration(cfg.RetryWaitSeconds) * time.Second,
			MaxRetries: cfg.MaxRetries,
		},
	)

	switch {
	case *getShow:
		if err := processor.FetchDay(ctx, *programName, day, folder); err != nil {
			slog.Error("Download failed", "program", *programName, "day", day, "error", err)
			os.Exit(1)
		}
	case *dumpJSON:
		if err := dumpEntry(ctx, client, *programName, day); err != nil {
			slog.Error("Dump failed", "program", *programName, "day", day, "error", err)
			os.Exit(1)
		}
	case *fillUp:
		if err := processor.FillUp(ctx, *programName, folder, cfg.LookbackDays); err != nil {
			slog.Error("Fill-up failed", "program", *programName, "error", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
	}
}

// resolveOutputFolder picks the output folder: the -o flag, then the config
// override, then ~/Radio/<program>.
func resolveOutputFolder(flagValue, configValue, programName string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configValue != "" {
		return filepath.Join(configValue, programName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Radio", programName), nil
}

// dumpEntry prints the matched show entry as JSON; for today it prints the
// whole decoded page state instead.
func dumpEntry(ctx context.Context, client *ner.Client, programName string, day domain.CalendarDay) error {
	if day == domain.Today() {
		state, err := client.State(ctx, programName, true)
		if err != nil {
			return err
		}
		raw, err := state.RawJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	}

	entry, err := client.ShowOn(ctx, programName, day, false)
	if err != nil {
		return err
	}
	if entry == nil {
		return errors.New("no entry for day " + day.ISO())
	}
	fmt.Println(string(entry.Raw))
	return nil
}

// printModules lists the module's dependencies from the build info, the
// closest Go equivalent of scanning a script's import statements.
func printModules() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("build information unavailable")
		return
	}
	for _, dep := range info.Deps {
		fmt.Printf("%s %s\n", dep.Path, dep.Version)
	}
}
