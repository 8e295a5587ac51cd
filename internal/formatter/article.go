package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"peoplesdaily/internal/models"
	"peoplesdaily/pkg/frontmatter"

	"github.com/PuerkitoBio/goquery"
)

// ArticleFileBase returns the shared base name of one day's primary
// article outputs, e.g. 20250410-0101. The derived markdown, JSON and
// readable-HTML files all reuse this base, so re-running a stage
// overwrites rather than accumulates.
func ArticleFileBase(date models.EditionDate) string {
	return date.String() + "-0101"
}

// RenderArticleMarkdown renders a normalized article as markdown:
// frontmatter, title heading, bold metadata lines, one paragraph per
// body paragraph, and a source footer.
func RenderArticleMarkdown(article *models.Article) string {
	var b strings.Builder

	fields := []frontmatter.Field{
		{Key: "title", Value: article.Title},
		{Key: "author", Value: article.Author},
		{Key: "date", Value: article.Date},
		{Key: "version", Value: article.Section},
		{Key: "source", Value: models.SourceName},
	}

	if article.OriginalURL != "" {
		fields = append(fields, frontmatter.Field{Key: "original_url", Value: article.OriginalURL})
	}

	if len(article.Keywords) > 0 {
		fields = append(fields, frontmatter.Field{Key: "keywords", Value: strings.Join(article.Keywords, ", ")})
	}

	b.WriteString(frontmatter.Build(fields))
	b.WriteString("\n")

	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	fmt.Fprintf(&b, "**日期：** %s\n\n", article.Date)
	fmt.Fprintf(&b, "**版面：** %s\n\n", article.Section)
	fmt.Fprintf(&b, "**作者：** %s\n\n", article.Author)

	for _, p := range bodyParagraphs(article.BodyHTML) {
		b.WriteString(p)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "来源：%s", models.SourceName)

	if article.OriginalURL != "" {
		fmt.Fprintf(&b, " · [原文链接](%s)", article.OriginalURL)
	}

	fmt.Fprintf(&b, " · 处理时间：%s\n", models.Now().Format("2006-01-02 15:04:05"))

	return b.String()
}

// articleDocument is the JSON shape of an article: metadata only,
// never the body.
type articleDocument struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Date          string   `json:"date"`
	Section       string   `json:"version"`
	Source        string   `json:"source"`
	OriginalURL   string   `json:"original_url,omitempty"`
	FileDate      string   `json:"file_date,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	ProcessedTime string   `json:"processed_time"`
}

// RenderArticleJSON renders the article's metadata as indented JSON.
// The body is excluded; URLs are not HTML-escaped.
func RenderArticleJSON(article *models.Article) (string, error) {
	doc := articleDocument{
		Title:         article.Title,
		Author:        article.Author,
		Date:          article.Date,
		Section:       article.Section,
		Source:        models.SourceName,
		OriginalURL:   article.OriginalURL,
		FileDate:      article.FileDate,
		Keywords:      article.Keywords,
		ProcessedTime: models.Now().Format("2006-01-02 15:04:05"),
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode article JSON: %w", err)
	}

	return buf.String(), nil
}

// RenderReadableHTML renders a minimal self-contained reading page for
// the article. Class hooks (.title, .meta, .content, .source-link)
// stay stable so the page can be re-normalized later.
func RenderReadableHTML(article *models.Article) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-CN\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s - %s</title>\n", article.Title, models.SourceName)
	b.WriteString(`<style>
body { max-width: 42em; margin: 2em auto; padding: 0 1em; font-family: serif; line-height: 1.8; }
.title { font-size: 1.6em; }
.meta span { margin-right: 1.5em; color: #666; }
.content p { text-indent: 2em; }
.source-link { margin-top: 2em; color: #666; }
</style>
`)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1 class=\"title\">%s</h1>\n", article.Title)
	b.WriteString("<div class=\"meta\">")
	fmt.Fprintf(&b, "<span>%s</span>", article.Date)
	fmt.Fprintf(&b, "<span>%s</span>", article.Section)
	fmt.Fprintf(&b, "<span>%s</span>", article.Author)
	b.WriteString("</div>\n")
	fmt.Fprintf(&b, "<div class=\"content\">%s</div>\n", article.BodyHTML)
	b.WriteString("<div class=\"source-link\">")
	fmt.Fprintf(&b, "来源：%s", models.SourceName)

	if article.OriginalURL != "" {
		fmt.Fprintf(&b, " · <a href=\"%s\">原文链接</a>", article.OriginalURL)
	}

	b.WriteString("</div>\n</body>\n</html>\n")

	return b.String()
}

// ArticleSummary returns a plain-text preview of the article body,
// truncated to limit grapheme clusters.
func ArticleSummary(article *models.Article, limit int) string {
	return Summary(strings.Join(bodyParagraphs(article.BodyHTML), " "), limit)
}

// bodyParagraphs splits body HTML into trimmed paragraph texts. Markup
// without <p> tags degrades to a single paragraph of its text.
func bodyParagraphs(bodyHTML string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return nil
	}

	var paragraphs []string

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		if text := strings.TrimSpace(doc.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return paragraphs
}
