package rank

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel   = openai.GPT3Dot5Turbo
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultTimeout = 30 * time.Second
)

// Options configures an OpenAIRanker. Zero fields take the defaults.
type Options struct {
	Model   string
	BaseURL string
	Timeout time.Duration
	TopN    int
}

// OpenAIRanker ranks through an OpenAI-compatible chat completion endpoint.
// A client is built per call since the credential comes with the query.
type OpenAIRanker struct {
	opts Options
}

// NewOpenAIRanker fills in defaults for unset options.
func NewOpenAIRanker(opts Options) *OpenAIRanker {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.TopN < 1 {
		opts.TopN = DefaultTopN
	}
	return &OpenAIRanker{opts: opts}
}

// Rank sends one completion request and never retries.
func (o *OpenAIRanker) Rank(ctx context.Context, q Query) Result {
	if q.Credential == "" {
		return failure(0, ErrNoCredential)
	}
	if len(q.Candidates) == 0 {
		return failure(0, ErrNothingToRank)
	}

	cfg := openai.DefaultConfig(q.Credential)
	cfg.BaseURL = o.opts.BaseURL
	cfg.HTTPClient = &http.Client{Timeout: o.opts.Timeout}
	client := openai.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: o.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(q.Candidates, q.Letters, o.opts.TopN)},
		},
		// a literal 0 is dropped by omitempty and the server default applies
		Temperature: math.SmallestNonzeroFloat32,
	}

	log.Debug("Requesting ranking", "model", o.opts.Model, "candidates", len(q.Candidates))
	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		status := statusOf(err)
		log.Warn("Ranking request failed", "status", status, "err", err)
		return failure(status, err)
	}
	log.Debugf("Ranking took [ %v ]", time.Since(start))

	if len(resp.Choices) == 0 {
		return failure(0, ErrNoChoices)
	}
	return success(resp.Choices[0].Message.Content)
}

// statusOf digs the HTTP status out of a go-openai error, 0 if none.
func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
