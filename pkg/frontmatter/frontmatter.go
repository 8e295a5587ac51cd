// Package frontmatter reads and writes the "---"-delimited key/value
// metadata block that prefixes every markdown document this system
// produces.
package frontmatter

import (
	"strings"
)

// Delimiter marks the start and end of a frontmatter block.
const Delimiter = "---"

// Field is one ordered key/value line. Output order follows input
// order, which is why the builder does not take a map.
type Field struct {
	Key   string
	Value string
}

// Build renders fields as a frontmatter block, including the trailing
// newline after the closing delimiter.
func Build(fields []Field) string {
	var b strings.Builder

	b.WriteString(Delimiter)
	b.WriteByte('\n')

	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteByte('\n')
	}

	b.WriteString(Delimiter)
	b.WriteByte('\n')

	return b.String()
}

// Extract splits content into its frontmatter key/value pairs and the
// remaining body. Lines split on the first colon; lines without one
// are skipped. Content without a leading block (or with an unclosed
// one) yields an empty map and the whole content as body.
func Extract(content string) (map[string]string, string) {
	meta := map[string]string{}

	if !strings.HasPrefix(content, Delimiter) {
		return meta, content
	}

	end := strings.Index(content[len(Delimiter):], Delimiter)
	if end < 0 {
		return meta, content
	}

	end += len(Delimiter)
	block := strings.TrimSpace(content[len(Delimiter):end])
	body := strings.TrimSpace(content[end+len(Delimiter):])

	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return meta, body
}
