package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/mentat/internal/common"
	"github.com/Veraticus/mentat/internal/model"
)

// fakeClient returns a canned completion and records every prompt it saw.
type fakeClient struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func TestBuildPrompt(t *testing.T) {
	categories := []string{"Groceries", "Transport", "Utilities"}
	remarks := []string{"VCB PMT electric bill", "grab ride downtown"}

	prompt := BuildPrompt(categories, remarks)

	assert.Contains(t, prompt, "Available categories: Groceries, Transport, Utilities")
	assert.Contains(t, prompt, "1. VCB PMT electric bill")
	assert.Contains(t, prompt, "2. grab ride downtown")
	assert.Contains(t, prompt, "ONLY a JSON array")
	assert.Contains(t, prompt, "same order")
	assert.Contains(t, prompt, "exactly one for each")
}

func TestBuildPromptPreservesRemarkOrder(t *testing.T) {
	remarks := []string{"first", "second", "third"}

	prompt := BuildPrompt([]string{"A"}, remarks)

	assert.Contains(t, prompt, "1. first\n2. second\n3. third\n")
}

func TestClassify(t *testing.T) {
	categories := []string{"Groceries", "Transport"}
	remarks := []string{"market run", "bus fare"}
	valid := `[{"transaction": "market run", "category": "Groceries"}, {"transaction": "bus fare", "category": "Transport"}]`

	tests := []struct {
		name       string
		categories []string
		remarks    []string
		response   string
		clientErr  error
		want       []model.ClassifiedRecord
		wantErr    error
		wantCalls  int
	}{
		{
			name:       "parses a plain JSON array",
			categories: categories,
			remarks:    remarks,
			response:   valid,
			want: []model.ClassifiedRecord{
				{Transaction: "market run", Category: "Groceries"},
				{Transaction: "bus fare", Category: "Transport"},
			},
			wantCalls: 1,
		},
		{
			name:       "strips markdown fences from the response",
			categories: categories,
			remarks:    remarks,
			response:   "```json\n" + valid + "\n```",
			want: []model.ClassifiedRecord{
				{Transaction: "market run", Category: "Groceries"},
				{Transaction: "bus fare", Category: "Transport"},
			},
			wantCalls: 1,
		},
		{
			name:       "ignores prose around the array",
			categories: categories,
			remarks:    remarks,
			response:   "Here are the classifications:\n" + valid + "\nLet me know if you need anything else.",
			want: []model.ClassifiedRecord{
				{Transaction: "market run", Category: "Groceries"},
				{Transaction: "bus fare", Category: "Transport"},
			},
			wantCalls: 1,
		},
		{
			name:       "non-JSON response is a parse error",
			categories: categories,
			remarks:    remarks,
			response:   "I could not classify these transactions.",
			wantErr:    common.ErrClassificationParse,
			wantCalls:  1,
		},
		{
			name:       "truncated JSON is a parse error",
			categories: categories,
			remarks:    remarks,
			response:   `[{"transaction": "market run", "cat`,
			wantErr:    common.ErrClassificationParse,
			wantCalls:  1,
		},
		{
			name:       "JSON object instead of array is a parse error",
			categories: categories,
			remarks:    remarks,
			response:   `{"transaction": "market run", "category": "Groceries"}`,
			wantErr:    common.ErrClassificationParse,
			wantCalls:  1,
		},
		{
			name:       "empty category list",
			categories: nil,
			remarks:    remarks,
			wantErr:    common.ErrNoCategories,
			wantCalls:  0,
		},
		{
			name:       "empty remark list skips the model call",
			categories: categories,
			remarks:    nil,
			want:       []model.ClassifiedRecord{},
			wantCalls:  0,
		},
		{
			name:       "client errors propagate",
			categories: categories,
			remarks:    remarks,
			clientErr:  errors.New("connection refused"),
			wantErr:    nil,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.clientErr}
			classifier := New(client, Options{})

			got, err := classifier.Classify(context.Background(), tt.categories, tt.remarks)

			assert.Equal(t, tt.wantCalls, client.callCount())
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.clientErr != nil:
				require.ErrorIs(t, err, tt.clientErr)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClassifyMakesExactlyOneCall(t *testing.T) {
	remarks := make([]string, 50)
	records := make([]model.ClassifiedRecord, 50)
	for i := range remarks {
		remarks[i] = fmt.Sprintf("remark %d", i)
		records[i] = model.ClassifiedRecord{Transaction: remarks[i], Category: "Misc"}
	}
	payload, err := json.Marshal(records)
	require.NoError(t, err)

	client := &fakeClient{response: string(payload)}
	classifier := New(client, Options{})

	got, err := classifier.Classify(context.Background(), []string{"Misc"}, remarks)
	require.NoError(t, err)
	require.Len(t, got, 50)

	require.Equal(t, 1, client.callCount())
	for _, remark := range remarks {
		assert.Contains(t, client.prompts[0], remark)
	}
}

func TestNewDefaultsFallbackCategory(t *testing.T) {
	classifier := New(&fakeClient{}, Options{})
	assert.Equal(t, DefaultFallbackCategory, classifier.FallbackCategory())

	classifier = New(&fakeClient{}, Options{FallbackCategory: "Khác"})
	assert.Equal(t, "Khác", classifier.FallbackCategory())
}
