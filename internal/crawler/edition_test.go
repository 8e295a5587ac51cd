package crawler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

const sectionBaseURL = "http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_01.html"

func newTestEditionCrawler(t *testing.T) *EditionCrawler {
	t.Helper()

	log := testLogger()
	fetcher := NewFetcher(10*time.Second, log)

	return NewEditionCrawler(fetcher, "http://paper.people.com.cn/rmrb/pc/layout", 0, log)
}

func TestExtractSections(t *testing.T) {
	html := `<html><body><div class="main w1000"><div class="right right-main">
		<div class="swiper-box"><div class="swiper-container">
			<a href="node_01.html">第01版：要闻</a>
			<a href="node_02.html">第02版：要闻</a>
			<a href="special.html">特刊</a>
		</div></div>
	</div></div></body></html>`

	c := newTestEditionCrawler(t)

	sections, err := c.ExtractSections(html, sectionBaseURL)
	if err != nil {
		t.Fatalf("ExtractSections failed: %v", err)
	}

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if sections[0].Title != "第01版：要闻" {
		t.Errorf("unexpected title: %q", sections[0].Title)
	}

	if sections[0].URL != "http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_01.html" {
		t.Errorf("relative href not resolved: %q", sections[0].URL)
	}

	if sections[0].ID != 1 || sections[1].ID != 2 {
		t.Errorf("section IDs not parsed: %d, %d", sections[0].ID, sections[1].ID)
	}

	// No node_NN pattern defaults to 0.
	if sections[2].ID != 0 {
		t.Errorf("expected default section ID 0, got %d", sections[2].ID)
	}
}

func TestExtractSections_MissingNav(t *testing.T) {
	c := newTestEditionCrawler(t)

	sections, err := c.ExtractSections("<html><body><p>nothing here</p></body></html>", sectionBaseURL)
	if err != nil {
		t.Fatalf("missing nav should not error: %v", err)
	}

	if len(sections) != 0 {
		t.Errorf("expected empty section list, got %d", len(sections))
	}
}

func TestExtractNewsItems_SingleAnchor(t *testing.T) {
	html := `<html><body><div class="main w1000"><div class="right right-main">
		<div class="news"><ul>
			<li><a href="content_1.html">Test Headline</a></li>
		</ul></div>
	</div></div></body></html>`

	c := newTestEditionCrawler(t)

	items, err := c.ExtractNewsItems(html, sectionBaseURL)
	if err != nil {
		t.Fatalf("ExtractNewsItems failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(items))
	}

	if items[0].Title != "Test Headline" {
		t.Errorf("expected title %q, got %q", "Test Headline", items[0].Title)
	}

	want := "http://paper.people.com.cn/rmrb/pc/layout/202504/10/content_1.html"
	if items[0].URL != want {
		t.Errorf("expected URL %q, got %q", want, items[0].URL)
	}
}

func TestExtractNewsItems_ZeroAnchors(t *testing.T) {
	c := newTestEditionCrawler(t)

	items, err := c.ExtractNewsItems("<html><body><div class=\"other\">no list</div></body></html>", sectionBaseURL)
	if err != nil {
		t.Fatalf("zero anchors must not be an error: %v", err)
	}

	if len(items) != 0 {
		t.Errorf("expected empty list, got %d items", len(items))
	}
}

func TestExtractNewsItems_NewsID(t *testing.T) {
	html := `<html><body><ul class="news-list">
		<a href="content/202504/10/c2025041012345.html">带编号</a>
		<a href="content_3.html">无编号</a>
	</ul></body></html>`

	c := newTestEditionCrawler(t)

	items, err := c.ExtractNewsItems(html, sectionBaseURL)
	if err != nil {
		t.Fatalf("ExtractNewsItems failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0].NewsID != "2025041012345" {
		t.Errorf("expected news ID from cNNN.html pattern, got %q", items[0].NewsID)
	}

	if items[1].NewsID != "" {
		t.Errorf("expected empty news ID default, got %q", items[1].NewsID)
	}
}

func TestDateFromURL(t *testing.T) {
	got := dateFromURL("http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_01.html")

	want := models.EditionDate{Year: 2025, Month: 4, Day: 10}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	// No date in the URL falls back to today.
	today := models.Today()
	if got := dateFromURL("http://example.com/x.html"); got != today {
		t.Errorf("expected today fallback %v, got %v", today, got)
	}
}

func TestFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, testLogger())

	_, _, err := fetcher.Get(srv.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}

	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", fetchErr.StatusCode)
	}
}

func TestCrawl_BatchTolerance(t *testing.T) {
	mux := http.NewServeMux()

	var srv *httptest.Server

	mux.HandleFunc("/root.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><div class="swiper-box"><div>
			<a href="` + srv.URL + `/good.html">第01版</a>
			<a href="` + srv.URL + `/broken.html">第02版</a>
		</div></div></body></html>`))
	})
	mux.HandleFunc("/good.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><ul class="news-list">
			<a href="content_1.html">头条新闻</a>
		</ul></body></html>`))
	})
	mux.HandleFunc("/broken.html", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	srv = httptest.NewServer(mux)
	defer srv.Close()

	log := testLogger()
	fetcher := NewFetcher(5*time.Second, log)
	c := NewEditionCrawler(fetcher, srv.URL+"/root.html", 0, log)

	results, _, err := c.Crawl(nil)
	if err != nil {
		t.Fatalf("crawl should tolerate one failed section: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 surviving section, got %d", len(results))
	}

	if results[0].Section.Title != "第01版" {
		t.Errorf("unexpected surviving section: %q", results[0].Section.Title)
	}

	if len(results[0].News) != 1 || results[0].News[0].Title != "头条新闻" {
		t.Errorf("unexpected news items: %+v", results[0].News)
	}
}
