// Package expand rewrites abbreviated transaction remarks into full text.
// Unambiguous abbreviations are substituted straight from the dictionary;
// ambiguous ones are delegated to a Resolver.
package expand

import (
	"context"
	"strings"

	"github.com/Veraticus/mentat/internal/dictionary"
	"github.com/Veraticus/mentat/internal/model"
)

// Resolver picks the best full word for an abbreviation among candidates.
// Candidates must be non-empty. Implementations always return a member of
// candidates; resolution failures are absorbed by falling back to one of
// them, never surfaced to the caller.
type Resolver interface {
	Resolve(ctx context.Context, abbr, contextText string, candidates []string) string
}

// Expander replaces abbreviations in remark text with their full words.
type Expander struct {
	dict     dictionary.Map
	resolver Resolver
}

// New creates an Expander over the given dictionary. The resolver is only
// consulted for abbreviations carrying more than one candidate.
func New(dict dictionary.Map, resolver Resolver) *Expander {
	return &Expander{dict: dict, resolver: resolver}
}

// Expand rewrites a single remark. Tokens are whitespace-separated and
// matched exactly against the dictionary; unknown tokens pass through
// unchanged. The resolver receives the original full text as context, not
// the partially expanded one. Tokens are rejoined with single spaces, so
// original spacing is not preserved.
func (e *Expander) Expand(ctx context.Context, text string) string {
	tokens := strings.Fields(text)
	for i, token := range tokens {
		candidates := e.dict.Candidates(token)
		switch len(candidates) {
		case 0:
			// Not an abbreviation.
		case 1:
			tokens[i] = candidates[0]
		default:
			tokens[i] = e.resolver.Resolve(ctx, token, text, candidates)
		}
	}

	return strings.Join(tokens, " ")
}

// ExpandAll fills Expanded on every transaction in place, in input order,
// invoking progress after each row when non-nil.
func (e *Expander) ExpandAll(ctx context.Context, transactions []model.Transaction, progress func()) {
	for i := range transactions {
		transactions[i].Expanded = e.Expand(ctx, transactions[i].Remark)
		if progress != nil {
			progress()
		}
	}
}
