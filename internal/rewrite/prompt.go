package rewrite

import (
	"fmt"
	"strings"

	"github.com/eduardo5010/study-cycle-sub001/internal/content"
)

const systemPrompt = `You adapt study material for learners at different difficulty levels. Keep every fact correct. Never add content unrelated to the original.`

func buildUserMessage(original string, v content.Variation, learnerHints []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Target level: %s\n", v.Level)
	fmt.Fprintf(&b, "Adjustment: %s (strength %.1f on a 0-1 scale)\n", v.Transform, v.Strength)
	fmt.Fprintf(&b, "Expected reading time: %.0f%% of the original\n", v.TimeMultiplier*100)

	if len(learnerHints) > 0 {
		b.WriteString("\nLearner hints already shown:\n")
		for _, h := range learnerHints {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	b.WriteString("\nOriginal material:\n")
	b.WriteString(original)
	b.WriteString("\n\nInstructions:\n")

	switch v.Transform {
	case content.TransformSimplify:
		b.WriteString(`Rewrite the material so it is easier to follow. Use shorter sentences and everyday words. Drop asides and secondary detail before dropping core ideas. The stronger the adjustment, the more you simplify.`)
	case content.TransformComplexify:
		b.WriteString(`Rewrite the material so it stretches a confident learner. Keep the original content and add depth: connect it to related ideas and ask the learner to apply it in a practical situation. The stronger the adjustment, the more you extend it.`)
	}
	b.WriteString("\nGive one to three short hints that do not repeat the learner hints above. Use plain text, no markdown.")

	return b.String()
}
