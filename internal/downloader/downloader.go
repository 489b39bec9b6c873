package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// ErrTruncated is returned in strict mode when fewer bytes arrive than the
// server declared.
var ErrTruncated = errors.New("download truncated")

// chunkSize is the fixed read size; the byte total is accumulated per chunk.
const chunkSize = 1024

// Result describes a completed download.
type Result struct {
	Path          string
	BytesReceived int64
	BytesExpected int64
}

// Truncated reports whether the server declared a size and the body fell
// short of it.
func (r *Result) Truncated() bool {
	return r.BytesExpected != 0 && r.BytesReceived != r.BytesExpected
}

// Downloader streams audio URLs to local files. In strict mode a truncated
// body is an error and the partial file is removed; by default it is only
// reported on the Result.
type Downloader struct {
	client *http.Client
	strict bool
}

func New(strict bool) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: 30 * time.Minute, // audio files can be large
		},
		strict: strict,
	}
}

// Fetch streams url into destPath in fixed-size chunks, showing a progress
// bar. The partial file is removed on any error, including context
// cancellation mid-download.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) (result *Result, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/45.0.2454.101 Safari/537.36")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		out.Close()
		if err != nil {
			os.Remove(destPath)
		}
	}()

	bar := newProgressBar(total)
	defer bar.Close()

	var received int64
	buf := make([]byte, chunkSize)
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			return nil, err
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				err = fmt.Errorf("failed to save file: %w", writeErr)
				return nil, err
			}
			received += int64(n)
			bar.Add(n)
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			// A short body is reported via the byte totals below.
			break
		}
		if readErr != nil {
			err = fmt.Errorf("failed to read response: %w", readErr)
			return nil, err
		}
	}

	if closeErr := out.Close(); closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
		return nil, err
	}

	result = &Result{Path: destPath, BytesReceived: received, BytesExpected: total}
	if result.Truncated() && d.strict {
		err = fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, received, total)
		return nil, err
	}

	return result, nil
}

func newProgressBar(total int64) *progressbar.ProgressBar {
	if total <= 0 {
		total = -1 // spinner when the size is unknown
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription("[cyan]Downloading episode...[reset]"),
	)
}
