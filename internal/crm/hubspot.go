package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-estimate-ws/internal/model"
)

// HubSpotClient talks to a real product-library / deal backend over REST.
type HubSpotClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHubSpotClient(baseURL, token string) *HubSpotClient {
	return &HubSpotClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HubSpotClient) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("crm api error: %s", string(raw))
	}
	return raw, nil
}

func (c *HubSpotClient) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	if c.token == "" {
		return nil, errors.New("missing CRM_TOKEN")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HubSpotClient) SubmitEstimate(ctx context.Context, items []model.EstimateItem) (SubmissionResult, error) {
	if c.token == "" {
		return SubmissionResult{}, errors.New("missing CRM_TOKEN")
	}

	body, err := json.Marshal(map[string]any{"line_items": items})
	if err != nil {
		return SubmissionResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/deals/line-items", bytes.NewBuffer(body))
	if err != nil {
		return SubmissionResult{}, err
	}

	raw, err := c.do(req)
	if err != nil {
		return SubmissionResult{}, err
	}

	var result SubmissionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return SubmissionResult{}, err
	}
	return result, nil
}
