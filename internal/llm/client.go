package llm

import (
	"context"
)

// Client turns a free-form client brief into JSON-only suggestion text.
type Client interface {
	EstimateFromText(ctx context.Context, brief string) (string, error)
}
