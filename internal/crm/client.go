package crm

import (
	"context"

	"go-estimate-ws/internal/model"
)

// SubmissionResult is the CRM's answer to a pushed estimate. Success=false is
// a recoverable failure: the caller keeps the estimate and lets the user
// retry.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client is the catalog / estimate-submission collaborator, a stand-in for a
// CRM backend such as HubSpot.
type Client interface {
	FetchCatalog(ctx context.Context) ([]model.Product, error)
	SubmitEstimate(ctx context.Context, items []model.EstimateItem) (SubmissionResult, error)
}
