package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// URL patterns the source encodes IDs and dates into.
var (
	sectionIDPattern = regexp.MustCompile(`node_(\d+)\.html`)
	newsIDPattern    = regexp.MustCompile(`c(\d+)\.html`)
	urlDatePattern   = regexp.MustCompile(`/(\d{4})(\d{2})/(\d{2})/`)
)

// EditionCrawler retrieves one day's edition: the root page, its
// section links and each section's news list.
type EditionCrawler struct {
	fetcher *Fetcher
	baseURL string
	delay   time.Duration
	logger  *logger.Logger
}

// NewEditionCrawler creates an edition crawler. delay is the fixed
// pause inserted between consecutive section fetches; it bounds the
// request rate against the shared third-party host and is part of the
// operational contract, not a tunable optimization.
func NewEditionCrawler(fetcher *Fetcher, baseURL string, delay time.Duration, log *logger.Logger) *EditionCrawler {
	return &EditionCrawler{
		fetcher: fetcher,
		baseURL: baseURL,
		delay:   delay,
		logger:  log,
	}
}

// FetchEditionRoot fetches the first section page of the edition for
// date and returns (resolvedURL, html).
func (c *EditionCrawler) FetchEditionRoot(date models.EditionDate) (string, string, error) {
	rootURL := date.NodeURL(c.baseURL, 1)
	c.logger.Info("fetching edition root", "url", rootURL)

	html, finalURL, err := c.fetcher.Get(rootURL)
	if err != nil {
		return "", "", err
	}

	return finalURL, html, nil
}

// FetchLatestEdition fetches the live "latest edition" URL, following
// redirects to the dated root page.
func (c *EditionCrawler) FetchLatestEdition() (string, string, error) {
	c.logger.Info("fetching latest edition", "url", c.baseURL)

	html, finalURL, err := c.fetcher.Get(c.baseURL)
	if err != nil {
		return "", "", err
	}

	c.logger.Info("latest edition resolved", "url", finalURL)

	return finalURL, html, nil
}

// ExtractSections parses the section navigation out of an edition root
// page. Relative hrefs resolve against baseURL; section IDs come from
// the node_NN.html URL pattern, defaulting to 0. A missing navigation
// container yields an empty list, logged as a warning.
func (c *EditionCrawler) ExtractSections(html, baseURL string) ([]models.SectionLink, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse edition HTML: %w", err)
	}

	nav, ok := Extract(doc, sectionNavSelectors)
	if !ok {
		c.logger.Warn("section navigation not found")

		return []models.SectionLink{}, nil
	}

	sections := []models.SectionLink{}

	nav.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")

		sections = append(sections, models.SectionLink{
			Title: strings.TrimSpace(link.Text()),
			URL:   resolveURL(baseURL, href),
			ID:    extractSectionID(href),
		})
	})

	c.logger.Info("extracted section links", "count", len(sections))

	return sections, nil
}

// FetchSectionNews fetches one section's news-list page.
func (c *EditionCrawler) FetchSectionNews(sectionURL string) (string, error) {
	html, _, err := c.fetcher.Get(sectionURL)
	if err != nil {
		return "", err
	}

	return html, nil
}

// ExtractNewsItems parses the news list out of a section page. Zero
// anchors is not an error; the result is simply empty.
func (c *EditionCrawler) ExtractNewsItems(html, baseURL string) ([]models.NewsItem, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse section HTML: %w", err)
	}

	list, ok := Extract(doc, newsListSelectors)
	if !ok {
		c.logger.Warn("news list not found")

		return []models.NewsItem{}, nil
	}

	items := []models.NewsItem{}

	list.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")

		items = append(items, models.NewsItem{
			Title:  strings.TrimSpace(link.Text()),
			URL:    resolveURL(baseURL, href),
			NewsID: extractNewsID(href),
		})
	})

	c.logger.Info("extracted news items", "count", len(items))

	return items, nil
}

// Crawl fetches the edition for date (or the latest edition when date
// is nil) and returns every section paired with its news items, plus
// the resolved edition date. The section loop is batch-tolerant: a
// failed section is logged and skipped, and the crawl succeeds as long
// as at least one section succeeded.
func (c *EditionCrawler) Crawl(date *models.EditionDate) ([]models.SectionNews, models.EditionDate, error) {
	var (
		rootURL string
		html    string
		err     error
		edition models.EditionDate
	)

	if date != nil {
		edition = *date
		rootURL, html, err = c.FetchEditionRoot(edition)
	} else {
		rootURL, html, err = c.FetchLatestEdition()
		if err == nil {
			edition = dateFromURL(rootURL)
		}
	}

	if err != nil {
		return nil, edition, fmt.Errorf("failed to fetch edition root: %w", err)
	}

	sections, err := c.ExtractSections(html, rootURL)
	if err != nil {
		return nil, edition, err
	}

	if len(sections) == 0 {
		return nil, edition, &ExtractionError{Target: "section navigation", Selectors: sectionNavSelectors}
	}

	results := []models.SectionNews{}

	for i, section := range sections {
		if i > 0 {
			time.Sleep(c.delay)
		}

		c.logger.Info("fetching section", "title", section.Title, "url", section.URL)

		sectionHTML, err := c.FetchSectionNews(section.URL)
		if err != nil {
			c.logger.Error("section fetch failed, skipping", "title", section.Title, "error", err)

			continue
		}

		news, err := c.ExtractNewsItems(sectionHTML, section.URL)
		if err != nil {
			c.logger.Error("section parse failed, skipping", "title", section.Title, "error", err)

			continue
		}

		results = append(results, models.SectionNews{Section: section, News: news})
	}

	if len(results) == 0 {
		return nil, edition, fmt.Errorf("all %d sections failed", len(sections))
	}

	c.logger.Info("edition crawl complete", "sections", len(results), "total", len(sections))

	return results, edition, nil
}

// resolveURL resolves href against base, returning href unchanged when
// either side fails to parse.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return baseURL.ResolveReference(ref).String()
}

func extractSectionID(u string) int {
	match := sectionIDPattern.FindStringSubmatch(u)
	if match == nil {
		return 0
	}

	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	return id
}

func extractNewsID(u string) string {
	match := newsIDPattern.FindStringSubmatch(u)
	if match == nil {
		return ""
	}

	return match[1]
}

// dateFromURL recovers the edition date from a /YYYYMM/DD/ path
// segment, falling back to the current Beijing day.
func dateFromURL(u string) models.EditionDate {
	match := urlDatePattern.FindStringSubmatch(u)
	if match == nil {
		return models.Today()
	}

	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])

	return models.EditionDate{Year: year, Month: month, Day: day}
}
