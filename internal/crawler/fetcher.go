// Package crawler fetches newspaper pages and extracts structured
// links and content from their HTML.
package crawler

import (
	"io"
	"net/http"
	"time"

	"peoplesdaily/internal/logger"
)

// Fetcher performs single-attempt GET requests against the source
// website with a fixed browser-like header set. Responses are decoded
// as UTF-8 regardless of the declared charset.
type Fetcher struct {
	client *http.Client
	logger *logger.Logger
}

// NewFetcher creates a fetcher with the given timeout. Redirects are
// followed, which is how the "latest edition" URL resolves to a dated
// one.
func NewFetcher(timeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// Get fetches url and returns the body and the final URL after
// redirects. Any transport error or non-2xx status yields a
// *FetchError; there is no retry.
func (f *Fetcher) Get(url string) (string, string, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", "", &FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Connection", "keep-alive")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("request failed", "url", url, "error", err)

		return "", "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Error("unexpected status", "url", url, "status", resp.StatusCode)

		return "", "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", &FetchError{URL: url, Err: err}
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	// The source serves UTF-8; the bytes are taken as-is without
	// consulting the declared charset.
	return string(body), finalURL, nil
}
