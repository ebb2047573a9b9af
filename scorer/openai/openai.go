// Package openai provides a router scoring strategy backed by the OpenAI
// Chat Completions API. It adapts one classification prompt per input/agent
// pair and parses the model's bare confidence reply.
package openai

import (
	"context"
	"time"

	"github.com/openai/openai-go"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/logging"
	"github.com/hupe1980/homemesh/scorer"
)

// Options configure the OpenAI scorer.
type Options struct {
	Model               string
	Timeout             time.Duration
	MaxCompletionTokens int64
	Logger              logging.Logger
}

// Scorer rates input/agent matches via a chat completion. A transport or API
// fault scores 0: routing degrades to "no signal" rather than faulting the
// router, which must stay a total function.
type Scorer struct {
	client *openai.Client
	opts   Options
}

// NewScorer creates a new OpenAI scorer using the official client
func NewScorer(optFns ...func(o *Options)) *Scorer {
	client := openai.NewClient()
	return NewScorerFromClient(&client, optFns...)
}

// NewScorerFromClient creates a new OpenAI scorer from an existing client
func NewScorerFromClient(client *openai.Client, optFns ...func(o *Options)) *Scorer {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Timeout:             10 * time.Second,
		MaxCompletionTokens: 8,
		Logger:              logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Scorer{client: client, opts: opts}
}

// Score implements the router's Scorer interface.
func (s *Scorer) Score(input string, descriptor core.AgentDescriptor) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scorer.SystemPrompt),
			openai.UserMessage(scorer.BuildPrompt(input, descriptor)),
		},
		Model:               s.opts.Model,
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(s.opts.MaxCompletionTokens),
	})
	if err != nil {
		s.opts.Logger.Warn("openai scoring failed for agent %s: %v", descriptor.ID, err)
		return 0
	}
	if len(resp.Choices) == 0 {
		s.opts.Logger.Warn("openai scoring returned no choices for agent %s", descriptor.ID)
		return 0
	}

	return scorer.ParseConfidence(resp.Choices[0].Message.Content)
}
