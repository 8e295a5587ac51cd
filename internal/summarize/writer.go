package summarize

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"peoplesdaily/internal/models"
	"peoplesdaily/pkg/frontmatter"
)

var indexBulletPattern = regexp.MustCompile(`- \[([^\]]*)\]\(([^)]+)\)`)

// SummaryFileName derives the summary file path from its source:
// {base}-ai-summarize.md next to the source file.
func SummaryFileName(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, ".md") + "-ai-summarize.md"
}

// ResolveBacklink finds the original article URL by scanning the day's
// edition index for a bullet whose link text contains the article
// title. Falls back to the source file name when the index is missing
// or has no matching bullet.
func ResolveBacklink(indexPath, title, fallback string) string {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fallback
	}

	for _, match := range indexBulletPattern.FindAllStringSubmatch(string(data), -1) {
		if title != "" && strings.Contains(match[1], title) {
			return match[2]
		}
	}

	return fallback
}

// RenderSummaryMarkdown renders a summary result as a standalone
// markdown file with its accounting recorded in the frontmatter.
func RenderSummaryMarkdown(result *models.SummaryResult, backlink string) string {
	title := result.Metadata["title"]
	if title == "" {
		title = result.SourceName
	}

	fields := []frontmatter.Field{
		{Key: "title", Value: "AI总结: " + title},
		{Key: "original_title", Value: title},
		{Key: "date", Value: result.Metadata["date"]},
		{Key: "source", Value: models.SourceName},
		{Key: "summarized_at", Value: result.Timestamp},
		{Key: "input_tokens", Value: strconv.Itoa(result.InputTokens)},
		{Key: "output_chars", Value: strconv.Itoa(result.OutputChars)},
		{Key: "estimated_cost", Value: fmt.Sprintf("$%.6f", result.EstimatedCostUSD)},
	}

	if result.Mock {
		fields = append(fields, frontmatter.Field{Key: "mock", Value: "true"})
	}

	var b strings.Builder

	b.WriteString(frontmatter.Build(fields))
	b.WriteString("\n")
	fmt.Fprintf(&b, "# AI总结: %s\n\n", title)
	b.WriteString(result.Summary)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "[查看原文](%s) · 来源：%s · 生成时间：%s\n",
		backlink, models.SourceName, result.Timestamp)

	return b.String()
}

// WriteSummary persists the summary next to its source file and
// returns the written path. The backlink is resolved against the
// edition index of the source file's day.
func WriteSummary(result *models.SummaryResult) (string, error) {
	dir := filepath.Dir(result.SourcePath)
	indexPath := filepath.Join(dir, dayOf(result.SourceName)+".md")

	title := result.Metadata["title"]
	backlink := ResolveBacklink(indexPath, title, result.SourceName)

	path := SummaryFileName(result.SourcePath)
	content := RenderSummaryMarkdown(result, backlink)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}

	return path, nil
}

// dayOf extracts the YYYYMMDD prefix of a converted article file name.
func dayOf(name string) string {
	if len(name) >= 8 {
		return name[:8]
	}

	return name
}
