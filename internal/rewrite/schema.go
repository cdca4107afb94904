package rewrite

import "github.com/eduardo5010/study-cycle-sub001/internal/llm"

// VariationSchema is the structured output expected for one rewritten
// variation.
var VariationSchema = &llm.Schema{
	Name:        "variation-rewrite",
	Description: "Study material rewritten for a target difficulty level, with hints",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "The rewritten study material",
			},
			"hints": map[string]any{
				"type":        "array",
				"description": "One to three short hints for a learner at this level",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"content", "hints"},
		"additionalProperties": false,
	},
}
