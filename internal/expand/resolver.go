package expand

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/mentat/internal/llm"
)

// LLMResolver resolves ambiguous abbreviations with one single-turn model
// call per invocation. Calls are not cached: the same abbreviation in the
// same context asks the model again.
type LLMResolver struct {
	client llm.Client
}

// NewLLMResolver creates a resolver over the given model client.
func NewLLMResolver(client llm.Client) *LLMResolver {
	return &LLMResolver{client: client}
}

// Resolve asks the model to choose among candidates and returns the trimmed
// answer when it matches a candidate exactly. A failed call or an answer
// outside the candidate list falls back to the first candidate; the
// fallback is a defined default, not an error.
func (r *LLMResolver) Resolve(ctx context.Context, abbr, contextText string, candidates []string) string {
	answer, err := r.client.Complete(ctx, buildResolvePrompt(abbr, contextText, candidates))
	if err != nil {
		slog.Debug("abbreviation resolution failed, using first candidate",
			"abbreviation", abbr,
			"error", err)
		return candidates[0]
	}

	word := strings.TrimSpace(answer)
	for _, candidate := range candidates {
		if word == candidate {
			return word
		}
	}

	slog.Debug("model answer not in candidate list, using first candidate",
		"abbreviation", abbr,
		"answer", word)
	return candidates[0]
}

// buildResolvePrompt creates the single-turn disambiguation prompt.
func buildResolvePrompt(abbr, contextText string, candidates []string) string {
	return fmt.Sprintf(`In the sentence "%s", the abbreviation "%s" stands for one of: %s.

Pick the meaning that best fits the sentence.

Respond with ONLY the chosen word, exactly as written in the list above. No explanation, no punctuation, no quotes.`,
		contextText,
		abbr,
		strings.Join(candidates, ", "))
}
