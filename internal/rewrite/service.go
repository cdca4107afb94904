// Package rewrite replaces the placeholder simplify and complexify
// transforms of adaptive content with LLM-written variations.
package rewrite

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/eduardo5010/study-cycle-sub001/internal/content"
	"github.com/eduardo5010/study-cycle-sub001/internal/llm"
)

// Service rewrites content variations with an LLM.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a rewrite service.
func NewService(provider llm.Provider, cfg Config) *Service {
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &Service{provider: provider, cfg: cfg}
}

type variationOutput struct {
	Content string   `json:"content"`
	Hints   []string `json:"hints"`
}

// Rewrite returns a copy of ac whose simplified and complexified
// variations were rewritten by the LLM. The optimal variation and
// non-text content are left as they are. Any failed call fails the
// whole rewrite and ac is returned unchanged with the error.
func (s *Service) Rewrite(ctx context.Context, ac content.AdaptiveContent) (content.AdaptiveContent, error) {
	original, ok := ac.Content.(string)
	if !ok || original == "" {
		return ac, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeVariationRewrite)
	out := ac
	out.Variations = make([]content.Variation, len(ac.Variations))
	copy(out.Variations, ac.Variations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)
	for i, v := range ac.Variations {
		if v.Transform == content.TransformNone {
			continue
		}
		g.Go(func() error {
			rewritten, err := s.rewriteOne(gctx, original, v, ac.Hints)
			if err != nil {
				return fmt.Errorf("rewrite %s variation: %w", v.Level, err)
			}
			out.Variations[i] = rewritten
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ac, err
	}
	return out, nil
}

func (s *Service) rewriteOne(ctx context.Context, original string, v content.Variation, learnerHints []string) (content.Variation, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(original, v, learnerHints)),
		Schema:      VariationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return v, err
	}

	var parsed variationOutput
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return v, fmt.Errorf("parse response: %w", err)
	}

	v.Content = parsed.Content
	v.Hints = parsed.Hints
	if v.Hints == nil {
		v.Hints = []string{}
	}
	return v, nil
}
