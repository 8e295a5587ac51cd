// Package summarize discovers converted articles and produces AI
// summaries of them through a DeepSeek-compatible chat endpoint.
package summarize

import (
	"peoplesdaily/internal/config"

	"github.com/mattn/go-runewidth"
	openai "github.com/sashabaranov/go-openai"
)

// Per-message and per-request token overhead of the chat format.
const (
	tokensPerMessage = 4
	tokensPerRequest = 3
)

// CountTokens estimates the token count of text: wide (CJK) runes
// count one token each, everything else four characters per token,
// rounded to nearest.
func CountTokens(text string) int {
	wide := 0
	narrow := 0

	for _, r := range text {
		if runewidth.RuneWidth(r) == 2 {
			wide++
		} else {
			narrow++
		}
	}

	return wide + int(float64(narrow)/4.0+0.5)
}

// EstimateInputTokens estimates the total prompt tokens of a chat
// request, including the fixed message and request overhead.
func EstimateInputTokens(messages []openai.ChatCompletionMessage) int {
	total := tokensPerRequest

	for _, m := range messages {
		total += CountTokens(m.Content) + tokensPerMessage
	}

	return total
}

// EstimateCost converts token counts to USD using the configured
// per-1000-token rates.
func EstimateCost(inputTokens, outputTokens int, pricing config.PricingConfig) float64 {
	return float64(inputTokens)/1000.0*pricing.InputPer1K +
		float64(outputTokens)/1000.0*pricing.OutputPer1K
}
