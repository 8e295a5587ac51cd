package models

// SummaryResult is the outcome of one AI summarization run. Persisted
// once as a new markdown file; never mutated after creation.
type SummaryResult struct {
	SourcePath       string            `json:"sourcePath"`
	SourceName       string            `json:"sourceName"`
	Metadata         map[string]string `json:"metadata"`
	Summary          string            `json:"summary"`
	Timestamp        string            `json:"timestamp"`
	InputTokens      int               `json:"inputTokens"`
	OutputChars      int               `json:"outputChars"`
	EstimatedCostUSD float64           `json:"estimatedCostUsd"`
	Mock             bool              `json:"mock"`
}
