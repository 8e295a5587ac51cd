package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"peoplesdaily/internal/models"
	"peoplesdaily/pkg/frontmatter"
)

func sampleSections() []models.SectionNews {
	return []models.SectionNews{
		{
			Section: models.SectionLink{
				Title: "第01版：要闻",
				URL:   "http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_01.html",
				ID:    1,
			},
			News: []models.NewsItem{
				{Title: "头版头条", URL: "http://paper.people.com.cn/rmrb/pc/layout/202504/10/content_1.html"},
				{Title: "第二条", URL: "http://paper.people.com.cn/rmrb/pc/layout/202504/10/content_2.html"},
			},
		},
		{
			// Site skipped to node_05; display renumbers it to 02.
			Section: models.SectionLink{
				Title: "第05版：国际",
				URL:   "http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_05.html",
				ID:    5,
			},
			News: []models.NewsItem{
				{Title: "国际新闻", URL: "http://paper.people.com.cn/rmrb/pc/layout/202504/10/content_9.html"},
			},
		},
	}
}

func sampleArticle() *models.Article {
	return &models.Article{
		Title:       "测试标题",
		Author:      "本报记者 张三",
		Date:        "2025年04月10日",
		Section:     "第01版：要闻",
		BodyHTML:    `<div id="ozoom"><p>第一段。</p><p>第二段。</p></div>`,
		OriginalURL: "http://paper.people.com.cn/rmrb/pc/content/202504/10/content_1.html",
		Keywords:    []string{"经济", "政策"},
	}
}

func TestIndexFileNames(t *testing.T) {
	date := models.EditionDate{Year: 2025, Month: 4, Day: 10}

	if got := IndexFileName(date); got != "20250410.md" {
		t.Errorf("unexpected markdown index name: %q", got)
	}

	if got := IndexHTMLFileName(date); got != "20250410.html" {
		t.Errorf("unexpected HTML index name: %q", got)
	}

	if got := ArticleFileBase(date); got != "20250410-0101" {
		t.Errorf("unexpected article base: %q", got)
	}
}

func TestRenderIndexMarkdown(t *testing.T) {
	date := models.EditionDate{Year: 2025, Month: 4, Day: 10}

	out := RenderIndexMarkdown(date, sampleSections())

	if !strings.Contains(out, "# 人民日报 - 2025年04月10日") {
		t.Error("missing top heading")
	}

	if !strings.Contains(out, "## [第01版：要闻](http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_01.html)") {
		t.Error("missing first section heading link")
	}

	// The second section keeps its title but its URL is renumbered by
	// display position.
	if !strings.Contains(out, "## [第05版：国际](http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_02.html)") {
		t.Error("second section URL not renumbered to node_02")
	}

	if !strings.Contains(out, "- [头版头条](http://paper.people.com.cn/rmrb/pc/layout/202504/10/content_1.html)") {
		t.Error("missing news bullet")
	}

	meta, _ := frontmatter.Extract(out)
	if meta["title"] != "人民日报 - 2025年04月10日" {
		t.Errorf("unexpected frontmatter title: %q", meta["title"])
	}

	if meta["date"] != "20250410" {
		t.Errorf("unexpected frontmatter date: %q", meta["date"])
	}

	if !strings.Contains(out, "来源：人民日报") {
		t.Error("missing source footer")
	}
}

func TestRenderIndexHTML(t *testing.T) {
	date := models.EditionDate{Year: 2025, Month: 4, Day: 10}

	out := RenderIndexHTML(date, sampleSections())

	if !strings.Contains(out, `<meta charset="UTF-8">`) {
		t.Error("missing charset declaration")
	}

	if !strings.Contains(out, `<li><a href="http://paper.people.com.cn/rmrb/pc/layout/202504/10/content_1.html">头版头条</a></li>`) {
		t.Error("missing news list item")
	}

	if !strings.Contains(out, "node_02.html") {
		t.Error("second section URL not renumbered")
	}
}

func TestRenderArticleMarkdown(t *testing.T) {
	out := RenderArticleMarkdown(sampleArticle())

	meta, body := frontmatter.Extract(out)

	if meta["title"] != "测试标题" || meta["author"] != "本报记者 张三" {
		t.Errorf("unexpected frontmatter: %v", meta)
	}

	if meta["version"] != "第01版：要闻" {
		t.Errorf("unexpected version field: %q", meta["version"])
	}

	if meta["original_url"] != "http://paper.people.com.cn/rmrb/pc/content/202504/10/content_1.html" {
		t.Errorf("unexpected original_url: %q", meta["original_url"])
	}

	if !strings.Contains(body, "# 测试标题") {
		t.Error("missing title heading")
	}

	if !strings.Contains(body, "**日期：** 2025年04月10日") {
		t.Error("missing bold date line")
	}

	// Markdown includes the body text, one paragraph per block.
	if !strings.Contains(body, "第一段。\n\n第二段。") {
		t.Errorf("paragraphs not rendered as separate blocks:\n%s", body)
	}

	if strings.Contains(body, "<p>") {
		t.Error("markdown must not carry raw paragraph tags")
	}
}

func TestRenderArticleJSON(t *testing.T) {
	out, err := RenderArticleJSON(sampleArticle())
	if err != nil {
		t.Fatalf("RenderArticleJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["title"] != "测试标题" {
		t.Errorf("unexpected title: %v", decoded["title"])
	}

	// JSON carries metadata only, never the body.
	if _, ok := decoded["body"]; ok {
		t.Error("JSON must not contain a body field")
	}

	if strings.Contains(out, "第一段。") {
		t.Error("JSON must not contain body text")
	}

	if _, ok := decoded["processed_time"]; !ok {
		t.Error("missing processed_time")
	}

	// URLs stay readable, not HTML-escaped.
	if !strings.Contains(out, "http://paper.people.com.cn") {
		t.Error("original URL missing or escaped")
	}

	if !strings.Contains(out, "  \"title\"") {
		t.Error("expected two-space indentation")
	}
}

func TestRenderReadableHTML(t *testing.T) {
	out := RenderReadableHTML(sampleArticle())

	for _, hook := range []string{`class="title"`, `class="meta"`, `class="content"`, `class="source-link"`} {
		if !strings.Contains(out, hook) {
			t.Errorf("missing class hook %s", hook)
		}
	}

	if !strings.Contains(out, `<div class="content"><div id="ozoom"><p>第一段。</p><p>第二段。</p></div></div>`) {
		t.Error("body markup must pass through unchanged")
	}

	if !strings.Contains(out, `<a href="http://paper.people.com.cn/rmrb/pc/content/202504/10/content_1.html">原文链接</a>`) {
		t.Error("missing source link")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "shorter than limit", text: "短文本", limit: 10, want: "短文本"},
		{name: "exactly at limit", text: "一二三", limit: 3, want: "一二三"},
		{name: "truncated", text: "一二三四五", limit: 3, want: "一二三..."},
		{name: "ascii truncated", text: "abcdef", limit: 4, want: "abcd..."},
		{name: "whitespace trimmed", text: "  文本  ", limit: 10, want: "文本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.text, tt.limit); got != tt.want {
				t.Errorf("Summary(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestSummary_DefaultLimit(t *testing.T) {
	long := strings.Repeat("字", SummaryLimit+50)

	got := Summary(long, 0)

	want := strings.Repeat("字", SummaryLimit) + "..."
	if got != want {
		t.Errorf("default limit not applied: got %d chars", len([]rune(got)))
	}
}
