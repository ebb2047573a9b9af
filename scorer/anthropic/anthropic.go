// Package anthropic provides a router scoring strategy backed by the
// Anthropic Messages API. It adapts one classification prompt per
// input/agent pair and parses the model's bare confidence reply.
package anthropic

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/logging"
	"github.com/hupe1980/homemesh/scorer"
)

// Options configure the Anthropic scorer.
type Options struct {
	Model     anthropic.Model
	Timeout   time.Duration
	MaxTokens int64
	APIKey    string
	Logger    logging.Logger
}

// Scorer rates input/agent matches via the Messages API. A transport or API
// fault scores 0: routing degrades to "no signal" rather than faulting the
// router, which must stay a total function.
type Scorer struct {
	client *anthropic.Client
	opts   Options
}

// NewScorer creates a new Anthropic scorer using the official client
func NewScorer(optFns ...func(o *Options)) *Scorer {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Scorer{client: &client, opts: opts}
}

// NewScorerFromClient creates a new Anthropic scorer from an existing client
func NewScorerFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Scorer {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Scorer{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		Timeout:   10 * time.Second,
		MaxTokens: 8,
		Logger:    logging.NoOpLogger{},
	}
}

// Score implements the router's Scorer interface.
func (s *Scorer) Score(input string, descriptor core.AgentDescriptor) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       s.opts.Model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: scorer.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(scorer.BuildPrompt(input, descriptor))),
		},
	})
	if err != nil {
		s.opts.Logger.Warn("anthropic scoring failed for agent %s: %v", descriptor.ID, err)
		return 0
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	return scorer.ParseConfidence(sb.String())
}
