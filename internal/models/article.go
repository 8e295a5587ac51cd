package models

// Field sentinels. Downstream formatters rely on these never being
// empty, so missing fields get a sentinel instead of "".
const (
	UntitledTitle = "无标题"
	UnknownAuthor = "未知"
	SourceName    = "人民日报"
)

// Article is the canonical normalized article record. It is created
// once per parsed article page and not mutated afterwards. BodyHTML
// keeps the original inline markup and is deliberately excluded from
// JSON output.
type Article struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Section     string   `json:"version"`
	BodyHTML    string   `json:"-"`
	OriginalURL string   `json:"original_url"`
	FileDate    string   `json:"file_date,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}
