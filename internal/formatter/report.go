// Package formatter renders crawl results and normalized articles
// into the markdown, JSON and HTML output files.
package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"peoplesdaily/internal/models"
	"peoplesdaily/pkg/frontmatter"
)

var nodeFilePattern = regexp.MustCompile(`node_\d+\.html`)

// IndexFileName returns the markdown index file name for an edition.
func IndexFileName(date models.EditionDate) string {
	return date.String() + ".md"
}

// IndexHTMLFileName returns the HTML index file name for an edition.
func IndexHTMLFileName(date models.EditionDate) string {
	return date.String() + ".html"
}

// RenderIndexMarkdown renders the edition index: one heading per
// section with its news links listed underneath. Section URLs are
// renumbered node_01, node_02, ... by display position so the index
// reads sequentially even when the site skips section numbers.
func RenderIndexMarkdown(date models.EditionDate, sections []models.SectionNews) string {
	var b strings.Builder

	b.WriteString(frontmatter.Build([]frontmatter.Field{
		{Key: "title", Value: fmt.Sprintf("%s - %s", models.SourceName, date.Display())},
		{Key: "date", Value: date.String()},
		{Key: "source", Value: models.SourceName},
	}))
	b.WriteString("\n")

	fmt.Fprintf(&b, "# %s - %s\n\n", models.SourceName, date.Display())

	for i, sn := range sections {
		fmt.Fprintf(&b, "## [%s](%s)\n\n", sn.Section.Title, renumberSectionURL(sn.Section.URL, i+1))

		for _, item := range sn.News {
			fmt.Fprintf(&b, "- [%s](%s)\n", item.Title, item.URL)
		}

		b.WriteString("\n")
	}

	b.WriteString(indexFooter(date))

	return b.String()
}

// RenderIndexHTML renders the same index as a standalone HTML page.
func RenderIndexHTML(date models.EditionDate, sections []models.SectionNews) string {
	var b strings.Builder

	title := fmt.Sprintf("%s - %s", models.SourceName, date.Display())

	b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-CN\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", title)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1 class=\"title\">%s</h1>\n", title)

	for i, sn := range sections {
		fmt.Fprintf(&b, "<h2><a href=\"%s\">%s</a></h2>\n",
			renumberSectionURL(sn.Section.URL, i+1), sn.Section.Title)
		b.WriteString("<ul>\n")

		for _, item := range sn.News {
			fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", item.URL, item.Title)
		}

		b.WriteString("</ul>\n")
	}

	fmt.Fprintf(&b, "<footer>来源：%s · 生成时间：%s</footer>\n",
		models.SourceName, models.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// renumberSectionURL rewrites the node_NN.html file part of a section
// URL to the section's 1-based display position.
func renumberSectionURL(url string, position int) string {
	return nodeFilePattern.ReplaceAllString(url, fmt.Sprintf("node_%02d.html", position))
}

func indexFooter(date models.EditionDate) string {
	return fmt.Sprintf("---\n\n来源：%s %s · 生成时间：%s\n",
		models.SourceName, date.Display(), models.Now().Format("2006-01-02 15:04:05"))
}
