package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/infrastructure/resilience"
)

const (
	analysisTemperature   = 0.3
	bulletTemperature     = 0.4
	skillMatchTemperature = 0.2

	analysisMaxTokens   = 2000
	bulletMaxTokens     = 1000
	skillMatchMaxTokens = 500
)

// Client talks to an OpenAI-compatible chat-completions endpoint. One
// long-lived instance is constructed at bootstrap and shared by every call
// path for the life of the process.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	guard      *resilience.Guard
}

// New fails fast when no credential is configured: analysis is unusable
// without one, and the condition is fatal for every call path, not
// per-request.
func New(baseURL, apiKey, model string, guard *resilience.Guard) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.WrapError(
			domain.ErrProviderUnavailable,
			"init provider client",
			errors.New("api key is not configured"),
		)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		guard:      guard,
	}, nil
}

// Analyzer implements ports.ResumeAnalyzer on top of the shared Client.
type Analyzer struct {
	client *Client
}

func NewAnalyzer(client *Client) *Analyzer {
	return &Analyzer{client: client}
}

func (a *Analyzer) Analyze(ctx context.Context, text, targetRole string) (domain.Analysis, error) {
	raw, err := a.client.complete(ctx, "analyze", chatOptions{
		System:      analysisSystemPrompt,
		User:        buildAnalysisPrompt(text, targetRole),
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return domain.Analysis{}, wrapCallError("analyze resume", err)
	}
	return parseAnalysis(raw)
}

func (a *Analyzer) GenerateBulletPoints(ctx context.Context, text, category string) ([]string, error) {
	raw, err := a.client.complete(ctx, "bullet_points", chatOptions{
		System:      bulletSystemPrompt,
		User:        buildBulletPointsPrompt(text, category),
		Temperature: bulletTemperature,
		MaxTokens:   bulletMaxTokens,
	})
	if err != nil {
		return nil, wrapCallError("generate bullet points", err)
	}
	return parseBulletPoints(raw)
}

func (a *Analyzer) MatchSkills(ctx context.Context, candidateSkills []string, targetRole string) (domain.SkillMatchReport, error) {
	raw, err := a.client.complete(ctx, "skill_match", chatOptions{
		System:      skillMatchSystemPrompt,
		User:        buildSkillMatchPrompt(candidateSkills, targetRole),
		Temperature: skillMatchTemperature,
		MaxTokens:   skillMatchMaxTokens,
	})
	if err != nil {
		return domain.SkillMatchReport{}, wrapCallError("match skills", err)
	}
	return parseSkillMatch(raw)
}

// wrapCallError maps transport failures onto domain kinds. An open breaker
// means the provider is known-bad right now, which callers should see as
// unavailability rather than a failed analysis.
func wrapCallError(op string, err error) error {
	if resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrProviderUnavailable, op, err)
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusServiceUnavailable {
		return domain.WrapError(domain.ErrProviderUnavailable, op, err)
	}
	return domain.WrapError(domain.ErrAnalysisFailed, op, err)
}

type chatOptions struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

func (c *Client) complete(ctx context.Context, operation string, opts chatOptions) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: opts.System},
			{Role: "user", Content: opts.User},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	var content string
	call := func(callCtx context.Context) error {
		var err error
		content, err = c.postChat(callCtx, operation, payload)
		return err
	}

	var err error
	if c.guard != nil {
		err = c.guard.Execute(ctx, "openai."+operation, call, classifyProviderError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}
