package crawler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// indexFirstLinkPattern finds the first bulleted link after the first
// section heading of a generated edition index file.
var indexFirstLinkPattern = regexp.MustCompile(`(?m)^## .*\n(?:\s*\n)*- \[([^\]]*)\]\(([^)]+)\)`)

// ArticleCrawler locates and retrieves the first article of an
// edition's primary section.
type ArticleCrawler struct {
	fetcher *Fetcher
	baseURL string
	logger  *logger.Logger
}

// NewArticleCrawler creates an article crawler.
func NewArticleCrawler(fetcher *Fetcher, baseURL string, log *logger.Logger) *ArticleCrawler {
	return &ArticleCrawler{
		fetcher: fetcher,
		baseURL: baseURL,
		logger:  log,
	}
}

// FetchPrimarySection fetches the primary (node_01) section page for
// date and returns (resolvedURL, html).
func (c *ArticleCrawler) FetchPrimarySection(date models.EditionDate) (string, string, error) {
	sectionURL := date.NodeURL(c.baseURL, 1)
	c.logger.Info("fetching primary section", "url", sectionURL)

	html, finalURL, err := c.fetcher.Get(sectionURL)
	if err != nil {
		return "", "", err
	}

	return finalURL, html, nil
}

// FirstArticleURL locates the first article link in a section page:
// the first anchor of the news-list container, or failing the selector
// chain, the first content_*.html-shaped href anywhere on the page.
// Returns the resolved URL and the link text.
func (c *ArticleCrawler) FirstArticleURL(sectionHTML, baseURL string) (string, string, error) {
	doc, err := parseDocument(sectionHTML)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse section HTML: %w", err)
	}

	if list, ok := Extract(doc, newsListSelectors); ok {
		link := list.Find("a[href]").First()
		if link.Length() > 0 {
			href, _ := link.Attr("href")
			title := strings.TrimSpace(link.Text())
			articleURL := resolveURL(baseURL, href)

			c.logger.Info("first article located", "title", title, "url", articleURL)

			return articleURL, title, nil
		}
	}

	// Last resort: scan every anchor for a content page href.
	c.logger.Info("news list missed, scanning raw links")

	var rawURL, rawTitle string

	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if strings.Contains(href, "content_") && strings.HasSuffix(href, ".html") {
			rawURL = resolveURL(baseURL, href)
			rawTitle = strings.TrimSpace(link.Text())

			return false
		}

		return true
	})

	if rawURL != "" {
		c.logger.Info("first article located by raw scan", "url", rawURL)

		return rawURL, rawTitle, nil
	}

	return "", "", &ExtractionError{Target: "first article link", Selectors: newsListSelectors}
}

// FirstArticleFromIndex locates the first article of the primary
// section by reading a previously generated index file
// ({YYYYMMDD}.md) instead of the live site. When the file for date is
// absent it falls back to the previous calendar day, exactly once.
// Returns the article URL, its title and the date whose index was
// used.
func (c *ArticleCrawler) FirstArticleFromIndex(dir string, date models.EditionDate) (string, string, models.EditionDate, error) {
	content, used, err := c.readIndexFile(dir, date)
	if err != nil {
		return "", "", date, err
	}

	match := indexFirstLinkPattern.FindStringSubmatch(content)
	if match == nil {
		return "", "", used, fmt.Errorf("index %s.md has no article link under its first section", used)
	}

	title, articleURL := match[1], match[2]
	c.logger.Info("first article located from index", "date", used.String(), "title", title)

	return articleURL, title, used, nil
}

func (c *ArticleCrawler) readIndexFile(dir string, date models.EditionDate) (string, models.EditionDate, error) {
	path := filepath.Join(dir, date.String()+".md")

	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), date, nil
	}

	if !os.IsNotExist(err) {
		return "", date, fmt.Errorf("failed to read index file: %w", err)
	}

	prev := date.Prev()
	c.logger.Warn("index file missing, falling back to previous day",
		"missing", date.String(), "fallback", prev.String())

	prevPath := filepath.Join(dir, prev.String()+".md")

	data, err = os.ReadFile(prevPath)
	if err != nil {
		return "", prev, fmt.Errorf("no index file for %s or %s: %w", date, prev, err)
	}

	return string(data), prev, nil
}

// FetchArticle fetches an article page.
func (c *ArticleCrawler) FetchArticle(articleURL string) (string, error) {
	c.logger.Info("fetching article", "url", articleURL)

	html, _, err := c.fetcher.Get(articleURL)
	if err != nil {
		return "", err
	}

	return html, nil
}

// ExtractArticleBody extracts the article body fragment from a full
// article page, using the body selector chain with the paragraph
// fallback.
func (c *ArticleCrawler) ExtractArticleBody(html string) (string, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	body, err := ExtractBody(doc)
	if err != nil {
		return "", err
	}

	return body, nil
}
