package summarize

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"peoplesdaily/internal/config"
	"peoplesdaily/internal/formatter"
	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when a real (non-mock) summarization is
// requested without a DEEPSEEK_API_KEY in the environment.
var ErrMissingAPIKey = errors.New("DEEPSEEK_API_KEY is not set")

const systemPrompt = "你是一个专业的新闻摘要助手，擅长提炼中文新闻的关键信息，输出简洁准确的结构化摘要。"

const userPromptTemplate = `请阅读以下新闻内容，提取关键信息并按照模板生成摘要，总长度控制在200字左右：

时间：
地点：
人物：
事件：
起因：
结果：

新闻内容：

%s`

// bodyDatePattern finds the first Chinese-format date in an article
// body, used by the mock summary's 时间 field.
var bodyDatePattern = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`)

// Summarizer produces a structured summary of one article, either via
// the chat-completion endpoint or a deterministic mock.
type Summarizer struct {
	client *openai.Client
	cfg    config.SummarizeConfig
	mock   bool
	logger *logger.Logger
}

// New creates a summarizer. With cfg.Mock set no client is built and
// apiKey may be empty; otherwise a missing key is ErrMissingAPIKey.
func New(cfg config.SummarizeConfig, apiKey string, log *logger.Logger) (*Summarizer, error) {
	if cfg.Mock {
		return &Summarizer{cfg: cfg, mock: true, logger: log}, nil
	}

	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = cfg.APIBaseURL

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: log,
	}, nil
}

// Summarize runs the full pass over one loaded document: estimate the
// prompt, obtain the summary, and assemble the result record with its
// token and cost accounting.
func (s *Summarizer) Summarize(ctx context.Context, doc *SourceDocument) (*models.SummaryResult, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, doc.Body)},
	}

	inputTokens := EstimateInputTokens(messages)
	s.logger.Info("summarizing article",
		"source", doc.Name, "input_tokens", inputTokens, "mock", s.mock)

	var summary string

	if s.mock {
		summary = s.mockSummary(doc.Body)
	} else {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       s.cfg.Model,
			Messages:    messages,
			Temperature: s.cfg.Temperature,
			Stream:      false,
		})
		if err != nil {
			return nil, fmt.Errorf("chat completion failed: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("chat completion returned no choices for %s", doc.Name)
		}

		summary = resp.Choices[0].Message.Content
	}

	outputChars := len([]rune(summary))

	return &models.SummaryResult{
		SourcePath:       doc.Path,
		SourceName:       doc.Name,
		Metadata:         doc.Metadata,
		Summary:          summary,
		Timestamp:        models.Now().Format("2006-01-02 15:04:05"),
		InputTokens:      inputTokens,
		OutputChars:      outputChars,
		EstimatedCostUSD: EstimateCost(inputTokens, outputChars, s.cfg.Pricing),
		Mock:             s.mock,
	}, nil
}

// mockSummary fills the summary template deterministically from the
// body: 时间 is the first Chinese-format date found in it, today
// otherwise, and 事件 is a short body preview.
func (s *Summarizer) mockSummary(body string) string {
	date := bodyDatePattern.FindString(body)
	if date == "" {
		date = models.Today().Display()
	}

	return fmt.Sprintf(`时间：%s
地点：详见原文
人物：详见原文
事件：%s
起因：详见原文
结果：详见原文`, date, formatter.Summary(body, 60))
}
