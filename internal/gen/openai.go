package gen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rocketinsights/market_radar/internal/search"
)

const (
	maxGroundingResults = 6
	minResultContent    = 300
	maxResultContent    = 4000
)

const systemPrompt = "You are an automated market intelligence engine for the advertising industry. " +
	"Follow the requested output format exactly. Do not wrap the output in markdown code blocks."

// ModelConfig configures the chat model behind the generator.
type ModelConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAIGenerator produces free text through an OpenAI-protocol chat model.
// Grounded requests run a web search first and inject the results as context
// ahead of the instruction. Each call is a single attempt; there is no retry.
type OpenAIGenerator struct {
	chatModel model.ChatModel
	searcher  search.Searcher
	limiter   *rate.Limiter
	log       *logrus.Logger
}

// NewOpenAIGenerator builds the production generator. searcher may be nil, in
// which case grounded requests fall back to a purely parametric response.
func NewOpenAIGenerator(ctx context.Context, cfg ModelConfig, searcher search.Searcher, limiter *rate.Limiter, log *logrus.Logger) (*OpenAIGenerator, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat model init: %w", err)
	}
	return &OpenAIGenerator{
		chatModel: chatModel,
		searcher:  searcher,
		limiter:   limiter,
		log:       log,
	}, nil
}

// Generate runs one generation call.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	content := req.Instruction
	if req.Grounded {
		if block := g.groundingContext(ctx, req.SearchQuery); block != "" {
			content = block + "\n\n" + req.Instruction
		}
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: content},
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return stripCodeFence(resp.Content), nil
}

// groundingContext searches the web and renders the hits as a context block.
// A failed search degrades to an ungrounded call rather than failing the
// generation.
func (g *OpenAIGenerator) groundingContext(ctx context.Context, query string) string {
	if g.searcher == nil || strings.TrimSpace(query) == "" {
		return ""
	}

	resp, err := g.searcher.Search(ctx, &search.Request{
		Query:      query,
		Topic:      "news",
		MaxResults: maxGroundingResults,
	})
	if err != nil {
		g.log.WithError(err).WithField("query", query).Warn("grounding search failed, continuing ungrounded")
		return ""
	}
	if len(resp.Results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("WEB CONTEXT (live search results, use these as your primary evidence):\n")
	for i, r := range resp.Results {
		content := r.Content
		if len(content) < minResultContent {
			if fetched, err := fetchArticleText(r.URL); err == nil && len(fetched) > len(content) {
				content = fetched
			}
		}
		if len(content) > maxResultContent {
			content = content[:maxResultContent]
		}
		fmt.Fprintf(&sb, "\n[%d] %s (%s, %s)\n%s\n", i+1, r.Title, r.URL, r.PublishedDate, content)
	}
	return sb.String()
}

// fetchArticleText pulls the readable body of a page for search hits whose
// snippet is too thin to ground on.
func fetchArticleText(url string) (string, error) {
	article, err := readability.FromURL(url, 15*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
