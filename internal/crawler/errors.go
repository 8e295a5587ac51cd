package crawler

import (
	"fmt"
	"strings"
)

// FetchError reports a failed HTTP fetch: a transport error or a
// non-2xx response. Fetches are single-attempt; the error propagates
// to the caller without retry.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that no selector in a fallback chain matched
// and, where one applies, the paragraph-fallback floor was not met.
type ExtractionError struct {
	Target    string
	Selectors []string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: no selector matched (tried: %s)",
		e.Target, strings.Join(e.Selectors, ", "))
}
