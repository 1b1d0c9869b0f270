package llm

import (
	"context"
	"encoding/json"
	"errors"

	"go-estimate-ws/internal/model"
)

type suggestionPayload struct {
	Products []model.ProductSuggestion `json:"products"`
}

// EstimateBrief runs the brief through the collaborator and decodes its
// suggestions. Entries with an empty name or category, or hours below one,
// are dropped; an empty surviving list is an error so the caller always gets
// either usable suggestions or a failure, never both.
func EstimateBrief(ctx context.Context, client Client, brief string) ([]model.ProductSuggestion, error) {
	rawJSON, err := client.EstimateFromText(ctx, brief)
	if err != nil {
		return nil, err
	}

	var parsed suggestionPayload
	if err := json.Unmarshal([]byte(rawJSON), &parsed); err != nil {
		return nil, errors.New("invalid LLM JSON output")
	}

	suggestions := make([]model.ProductSuggestion, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if p.Name == "" || p.Category == "" || p.DefaultHours < 1 {
			continue
		}
		suggestions = append(suggestions, p)
	}
	if len(suggestions) == 0 {
		return nil, errors.New("no usable suggestions in LLM output")
	}
	return suggestions, nil
}
