package summarize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"peoplesdaily/pkg/frontmatter"
)

// SourceDocument is a converted article loaded for summarization:
// its frontmatter split from its markdown body.
type SourceDocument struct {
	Path     string
	Name     string
	Metadata map[string]string
	Body     string
}

// LoadSource reads a converted article file and splits it into
// frontmatter metadata and body.
func LoadSource(path string) (*SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read article file: %w", err)
	}

	meta, body := frontmatter.Extract(string(data))

	return &SourceDocument{
		Path:     path,
		Name:     filepath.Base(path),
		Metadata: meta,
		Body:     strings.TrimSpace(body),
	}, nil
}

// Title returns the document's frontmatter title, or its file name
// when the frontmatter has none.
func (d *SourceDocument) Title() string {
	if title := d.Metadata["title"]; title != "" {
		return title
	}

	return d.Name
}
