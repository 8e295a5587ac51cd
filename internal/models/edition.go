// Package models defines data structures shared by the crawler,
// normalizer, formatter and summarizer.
package models

// SectionLink is one numbered division ("版面") of an edition, linked
// from the edition's navigation. Lists of SectionLink preserve document
// order; the first entry is the primary section.
type SectionLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	ID    int    `json:"sectionId"`
}

// NewsItem is one article link inside a section's news list.
type NewsItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	NewsID string `json:"newsId"`
}

// SectionNews pairs a section with the news items extracted from its
// list page. The report formatter consumes a slice of these.
type SectionNews struct {
	Section SectionLink `json:"section"`
	News    []NewsItem  `json:"news"`
}
