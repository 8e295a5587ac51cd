package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector fallback chains. Each chain is ordered: the first entry is
// the selector observed on the live site, the rest are known alternate
// markup patterns from mirrors and older layouts. The chains are the
// system's defense against markup drift, so they stay declarative
// lists rather than code.
var (
	sectionNavSelectors = []string{
		"body > div.main.w1000 > div.right.right-main > div.swiper-box > div",
		"div.swiper-box div.swiper-container",
		"div.swiper-box",
	}

	newsListSelectors = []string{
		"body > div.main.w1000 > div.right.right-main > div.news > ul",
		"body > div.main.w1000 > div.left.paper-box > div.news > ul",
		".news-list",
		".news ul",
		"ul.news-list",
	}

	articleBodySelectors = []string{
		"body > div.main.w1000 > div.right.right-main > div.article-box > div.article",
		".article",
		"#ozoom",
		".article-box .article",
		".article-content",
		"[id^=articleContent]",
	}
)

// paragraphFloor is the minimum number of text-bearing paragraphs the
// paragraph fallback needs before it will synthesize a body. Below
// that the paragraphs are more likely navigation chrome than content.
const paragraphFloor = 4

// Extract tries selectors in order and returns the first selection
// with non-empty text. An empty selector list is a valid input and
// simply reports no match.
func Extract(doc *goquery.Document, selectors []string) (*goquery.Selection, bool) {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel, true
		}
	}

	return nil, false
}

// ExtractBody returns the article body fragment from a full article
// page: the first match of the body selector chain, or a synthesized
// wrapper around the page's text paragraphs when the chain fails and
// at least paragraphFloor paragraphs exist outside header/footer
// containers.
func ExtractBody(doc *goquery.Document) (string, error) {
	if sel, ok := Extract(doc, articleBodySelectors); ok {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			return "", err
		}

		return html, nil
	}

	paragraphs := collectParagraphs(doc)
	if len(paragraphs) >= paragraphFloor {
		var b strings.Builder

		b.WriteString(`<div class="article-content">` + "\n")

		for _, p := range paragraphs {
			b.WriteString(p)
			b.WriteByte('\n')
		}

		b.WriteString("</div>")

		return b.String(), nil
	}

	return "", &ExtractionError{Target: "article body", Selectors: articleBodySelectors}
}

// collectParagraphs returns the outer HTML of every text-bearing <p>
// that is not inside a header or footer container.
func collectParagraphs(doc *goquery.Document) []string {
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

	return paragraphs
}

// parseDocument wraps goquery parsing of an HTML string.
func parseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
