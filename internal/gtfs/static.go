package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jamespfennell/gtfs"
	"github.com/sourcegraph/conc/pool"

	"hustbus.org/routeplanner/internal/logging"
)

const maxDownloadRetries = 4

// downloadBackOff is the retry policy for feed downloads.
var downloadBackOff = func() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxDownloadRetries)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func rawGtfsData(ctx context.Context, source string, logger *slog.Logger) ([]byte, error) {
	if isRemote(source) {
		return downloadGtfsData(ctx, source, logger)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("error reading local GTFS source: %w", err)
	}
	if info.IsDir() {
		return zipDirectory(source)
	}

	b, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("error reading local GTFS file: %w", err)
	}
	return b, nil
}

func downloadGtfsData(ctx context.Context, source string, logger *slog.Logger) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer logging.SafeCloseWithLogging(resp.Body, logger, "gtfs_download_body", slog.String("source", source))

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("GTFS download failed, retrying",
			slog.String("source", source),
			slog.String("error", err.Error()),
			slog.Duration("retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(downloadBackOff(), ctx), notify); err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	return body, nil
}

// zipDirectory packs the .txt files of an unzipped feed into an in-memory archive.
func zipDirectory(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS directory: %w", err)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("error reading GTFS file %s: %w", entry.Name(), err)
		}
		f, err := w.Create(entry.Name())
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// loadGTFSData loads and parses GTFS data from a URL, a zip file or a feed directory
func loadGTFSData(ctx context.Context, source string, logger *slog.Logger) (*gtfs.Static, error) {
	b, err := rawGtfsData(ctx, source, logger)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data from %s: %w", source, err)
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data from %s: %w", source, err)
	}

	return staticData, nil
}

type loadedFeed struct {
	index int
	data  *gtfs.Static
}

// LoadFeeds loads every source concurrently and returns the feeds in source order.
// The first failure cancels the remaining loads.
func LoadFeeds(ctx context.Context, sources []string, logger *slog.Logger) ([]*gtfs.Static, error) {
	p := pool.NewWithResults[loadedFeed]().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, source := range sources {
		p.Go(func(ctx context.Context) (loadedFeed, error) {
			data, err := loadGTFSData(ctx, source, logger)
			return loadedFeed{index: i, data: data}, err
		})
	}

	loaded, err := p.Wait()
	if err != nil {
		return nil, err
	}

	feeds := make([]*gtfs.Static, len(sources))
	for _, f := range loaded {
		feeds[f.index] = f.data
	}
	return feeds, nil
}
