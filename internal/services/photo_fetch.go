package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	maxLookupPhotos  = 5
	photoFetchTimeout = 8 * time.Second
	// Skip tiny images (icons/spacers) and overly large ones.
	minPhotoBytes = 5_000
	maxPhotoBytes = 10_000_000

	photoUserAgent = "Mozilla/5.0 (compatible; PropertyBot/1.0)"
)

// PhotoFetcher downloads candidate exterior photos for vision analysis.
// Every failure is isolated: a bad URL yields nil for that slot, never an
// error for the batch.
type PhotoFetcher struct {
	client *http.Client
	logger *slog.Logger
}

func NewPhotoFetcher(logger *slog.Logger) *PhotoFetcher {
	return &PhotoFetcher{
		client: &http.Client{},
		logger: logger,
	}
}

// FetchAll downloads up to maxLookupPhotos URLs concurrently and returns the
// successfully fetched image bytes, dropping failed slots.
func (f *PhotoFetcher) FetchAll(ctx context.Context, urls []string) [][]byte {
	if len(urls) > maxLookupPhotos {
		urls = urls[:maxLookupPhotos]
	}

	results := make([][]byte, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = f.fetchOne(ctx, url)
		}(i, url)
	}
	wg.Wait()

	var valid [][]byte
	for _, data := range results {
		if data != nil {
			valid = append(valid, data)
		}
	}

	f.logger.Info("photo fetch complete", "requested", len(urls), "fetched", len(valid))
	return valid
}

// fetchOne downloads one image, returning nil on any failure or when the
// response is not a plausibly-sized image.
func (f *PhotoFetcher) fetchOne(ctx context.Context, url string) []byte {
	ctx, cancel := context.WithTimeout(ctx, photoFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Debug("photo request build failed", "url", url, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", photoUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("photo fetch failed", "url", url, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		f.logger.Debug("photo read failed", "url", url, "error", err)
		return nil
	}
	if len(data) < minPhotoBytes || len(data) > maxPhotoBytes {
		return nil
	}

	return data
}
