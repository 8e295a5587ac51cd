// Package normalizer turns raw article HTML into the canonical
// Article record, independent of which selector happened to match.
package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// ErrEmptyHTML is returned when the input document is empty. Missing
// individual fields are never an error; they get sentinels instead.
var ErrEmptyHTML = errors.New("article HTML is empty")

// Per-field selector fallback chains, ordered by how often each
// pattern is observed on the source site.
var (
	titleSelectors = []string{
		"div.article h1",
		"h1",
		"div.article-box h1",
		"h2.title",
		"title",
	}

	authorSelectors = []string{
		"div.article p.sec",
		"p.author",
		"span.author",
	}

	dateSelectors = []string{
		"span.newstime",
	}

	sectionSelectors = []string{
		"p.ban",
	}

	bodySelectors = []string{
		"div#ozoom",
		"div.article",
		"div.article-content",
		"div.content",
	}

	// Selector hooks of the readable HTML pages this system itself
	// generates, so converted output can be re-normalized.
	readableTitleSelectors = []string{".title"}
	readableBodySelectors  = []string{".content"}
)

var (
	htmlDatePattern  = regexp.MustCompile(`/(\d{6})/(\d{2})/`)
	sourceURLPattern = regexp.MustCompile(`http://paper\.people\.com\.cn/[^\s"']+?\.html`)
)

// headingTags are tried in order when titling a body fragment.
var headingTags = []string{"h1", "h2", "h3"}

const paragraphFloor = 4

// Normalizer parses article pages and fragments.
type Normalizer struct {
	logger *logger.Logger
}

// New creates a normalizer.
func New(log *logger.Logger) *Normalizer {
	return &Normalizer{logger: log}
}

// Parse extracts a canonical Article from raw article HTML. sourceURL
// may be empty, in which case the original URL is recovered from the
// HTML when possible. Only empty or unparseable input fails; every
// missing optional field falls back to a sentinel or derived value.
func (n *Normalizer) Parse(html, sourceURL string) (*models.Article, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article HTML: %w", err)
	}

	article := &models.Article{
		Title:       n.extractTitle(doc),
		Author:      n.extractAuthor(doc),
		Date:        n.extractDate(doc, html),
		Section:     n.extractSection(doc),
		BodyHTML:    n.extractBody(doc),
		OriginalURL: sourceURL,
		Keywords:    n.extractKeywords(doc),
	}

	if article.OriginalURL == "" {
		article.OriginalURL = sourceURLPattern.FindString(html)
	}

	n.logger.Info("article normalized", "title", article.Title)

	return article, nil
}

// ParseFragment normalizes an already-extracted body fragment that has
// no surrounding page. Title comes from any heading inside the
// fragment; date from the source URL path or today; the remaining
// fields get their defaults for the primary section.
func (n *Normalizer) ParseFragment(fragment, sourceURL string) (*models.Article, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, ErrEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article fragment: %w", err)
	}

	title := models.SourceName + "文章"

	for _, tag := range headingTags {
		if text := strings.TrimSpace(doc.Find(tag).First().Text()); text != "" {
			title = text

			break
		}
	}

	date := formatPathDate(htmlDatePattern.FindStringSubmatch(sourceURL))
	if date == "" {
		date = models.Today().Display()
	}

	return &models.Article{
		Title:       title,
		Author:      models.SourceName,
		Date:        date,
		Section:     "01版",
		BodyHTML:    fragment,
		OriginalURL: sourceURL,
	}, nil
}

func (n *Normalizer) extractTitle(doc *goquery.Document) string {
	for _, selector := range append(titleSelectors, readableTitleSelectors...) {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	return models.UntitledTitle
}

func (n *Normalizer) extractAuthor(doc *goquery.Document) string {
	for _, selector := range authorSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	if content, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		if author := strings.TrimSpace(content); author != "" {
			return author
		}
	}

	return models.UnknownAuthor
}

func (n *Normalizer) extractDate(doc *goquery.Document, html string) string {
	for _, selector := range dateSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	if date := formatPathDate(htmlDatePattern.FindStringSubmatch(html)); date != "" {
		return date
	}

	return models.Today().Display()
}

func (n *Normalizer) extractSection(doc *goquery.Document) string {
	for _, selector := range sectionSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	// Secondary: the date-box paragraph carrying a section marker.
	var section string

	doc.Find("div.date-box p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if strings.Contains(text, "版：") {
			section = text

			return false
		}

		return true
	})

	return section
}

func (n *Normalizer) extractBody(doc *goquery.Document) string {
	for _, selector := range append(bodySelectors, readableBodySelectors...) {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			if html, err := goquery.OuterHtml(sel); err == nil {
				return html
			}
		}
	}

	// Paragraph fallback, excluding header/footer chrome.
	var paragraphs []string

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if strings.TrimSpace(p.Text()) == "" {
			return
		}

		if p.ParentsFiltered("div.header, div.footer, header, footer").Length() > 0 {
			return
		}

		if html, err := goquery.OuterHtml(p); err == nil {
			paragraphs = append(paragraphs, html)
		}
	})

	if len(paragraphs) < paragraphFloor {
		return ""
	}

	return `<div class="article-content">` + strings.Join(paragraphs, "") + "</div>"
}

// extractKeywords collects keywords from the document metadata tag and
// any tag-list containers, deduplicated in encounter order.
func (n *Normalizer) extractKeywords(doc *goquery.Document) []string {
	var keywords []string

	seen := map[string]bool{}

	add := func(k string) {
		k = strings.TrimSpace(k)
		if k != "" && !seen[k] {
			seen[k] = true
			keywords = append(keywords, k)
		}
	}

	if content, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, k := range strings.Split(content, ",") {
			add(k)
		}
	}

	doc.Find("div.keywords a, div.tags a, div.article-tags a").Each(func(_ int, tag *goquery.Selection) {
		add(tag.Text())
	})

	return keywords
}

// formatPathDate renders a /YYYYMM/DD/ regex match as the Chinese
// display form.
func formatPathDate(match []string) string {
	if match == nil {
		return ""
	}

	yearMonth, day := match[1], match[2]

	return fmt.Sprintf("%s年%s月%s日", yearMonth[:4], yearMonth[4:6], day)
}
