// Package classify assigns categories to transactions with a single batch
// model call and reconciles the response row count against the input.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/mentat/internal/common"
	"github.com/Veraticus/mentat/internal/llm"
	"github.com/Veraticus/mentat/internal/model"
)

// DefaultFallbackCategory labels transactions the model failed to classify.
const DefaultFallbackCategory = "Uncategorized"

// Options configures a Classifier.
type Options struct {
	// FallbackCategory replaces DefaultFallbackCategory when non-empty.
	FallbackCategory string
}

// Classifier sends every remark and the full category list to the model in
// one call. It is invoked once per run; there is no per-row classification.
type Classifier struct {
	client   llm.Client
	fallback string
}

// New creates a Classifier. A zero Options uses DefaultFallbackCategory.
func New(client llm.Client, opts Options) *Classifier {
	fallback := opts.FallbackCategory
	if fallback == "" {
		fallback = DefaultFallbackCategory
	}

	return &Classifier{client: client, fallback: fallback}
}

// FallbackCategory returns the label assigned to unclassified rows.
func (c *Classifier) FallbackCategory() string {
	return c.fallback
}

// Classify builds the batch prompt, makes the single model call, and parses
// the JSON array it returns. The response must deserialize into a sequence
// of {"transaction", "category"} objects; anything else wraps
// common.ErrClassificationParse and the run produces no categorized output.
func (c *Classifier) Classify(ctx context.Context, categories, remarks []string) ([]model.ClassifiedRecord, error) {
	if len(categories) == 0 {
		return nil, common.ErrNoCategories
	}
	if len(remarks) == 0 {
		return []model.ClassifiedRecord{}, nil
	}

	response, err := c.client.Complete(ctx, BuildPrompt(categories, remarks))
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	records, err := parseRecords(response)
	if err != nil {
		return nil, err
	}

	common.LogDebug("classification response parsed", common.Fields{
		"requested": len(remarks),
		"returned":  len(records),
	})

	return records, nil
}

// BuildPrompt assembles the one-shot batch prompt: every category name and
// every raw remark, both in input order.
func BuildPrompt(categories, remarks []string) string {
	var remarkList strings.Builder
	for i, remark := range remarks {
		fmt.Fprintf(&remarkList, "%d. %s\n", i+1, remark)
	}

	return fmt.Sprintf(`You are a financial transaction classifier. Assign each transaction remark below to exactly one of the available categories.

Available categories: %s

Transactions:
%s
Respond with ONLY a JSON array, no markdown and no commentary. One object per transaction, in the same order as the input, exactly one for each:
[{"transaction": "<remark text>", "category": "<category name>"}]`,
		strings.Join(categories, ", "),
		remarkList.String())
}

// parseRecords extracts the classification array from raw model output.
func parseRecords(response string) ([]model.ClassifiedRecord, error) {
	payload := llm.ExtractJSON(response)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON value in model response", common.ErrClassificationParse)
	}

	var records []model.ClassifiedRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClassificationParse, err)
	}

	return records, nil
}
