package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-estimate-ws/internal/crm"
	"go-estimate-ws/internal/llm"
	"go-estimate-ws/internal/model"
	"go-estimate-ws/internal/store"
	"go-estimate-ws/internal/ws"
	"go-estimate-ws/pkg/validator"

	"github.com/google/uuid"
)

var (
	// ErrCatalogPending signals that the bootstrap fetch has not resolved yet.
	ErrCatalogPending = errors.New("catalog is still loading")
	// ErrProductNotFound signals an unknown catalog id.
	ErrProductNotFound = errors.New("product not found")
	// ErrEmptyEstimate rejects submitting an estimate with no lines.
	ErrEmptyEstimate = errors.New("estimate is empty")
	// ErrEmptyBrief rejects an AI request with a blank client brief.
	ErrEmptyBrief = errors.New("client brief cannot be empty")
)

// AddItemResult reports the outcome of an add: Duplicate means the product
// was already estimated and nothing changed (informational, not a failure).
type AddItemResult struct {
	Item      model.EstimateItem `json:"item"`
	Duplicate bool               `json:"duplicate"`
}

type EstimateService interface {
	BootstrapCatalog(ctx context.Context) error
	Catalog() ([]model.Product, error)
	CreateCustomProduct(req *model.CustomProductRequest) (model.Product, model.EstimateItem, error)
	UpdateDefaultHours(productID string, hours int) (model.Product, error)
	Summary() model.EstimateSummary
	AddItem(productID string) (AddItemResult, error)
	UpdateItemHours(productID string, hours int) (model.EstimateItem, bool)
	RemoveItem(productID string)
	SuggestFromBrief(ctx context.Context, brief string) ([]model.ProductSuggestion, error)
	MergeSuggestions(suggestions []model.ProductSuggestion) []model.EstimateItem
	Submit(ctx context.Context) (crm.SubmissionResult, error)
}

type estimateService struct {
	store    *store.EstimateStore
	crm      crm.Client
	ai       llm.Client
	notifier ws.Notifier
}

func NewEstimateService(st *store.EstimateStore, crmClient crm.Client, aiClient llm.Client, notifier ws.Notifier) EstimateService {
	return &estimateService{
		store:    st,
		crm:      crmClient,
		ai:       aiClient,
		notifier: notifier,
	}
}

func (s *estimateService) notify(action, message string, data interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(action, message, data)
	}
}

// BootstrapCatalog pulls the seed catalog from the CRM collaborator. Runs
// once at startup; estimate operations are not blocked while it is pending.
func (s *estimateService) BootstrapCatalog(ctx context.Context) error {
	products, err := s.crm.FetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	s.store.LoadCatalog(products)
	s.notify("catalog_loaded", fmt.Sprintf("Catalog loaded with %d products", len(products)), nil)
	return nil
}

func (s *estimateService) Catalog() ([]model.Product, error) {
	if !s.store.CatalogLoaded() {
		return nil, ErrCatalogPending
	}
	return s.store.Catalog(), nil
}

// CreateCustomProduct registers a user-authored product. Registration always
// also adds the product to the estimate: a newly defined product is assumed
// wanted.
func (s *estimateService) CreateCustomProduct(req *model.CustomProductRequest) (model.Product, model.EstimateItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return model.Product{}, model.EstimateItem{}, errors.New(validator.FirstMessage(errs))
	}

	product := model.Product{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Category:     req.Category,
		DefaultHours: model.ClampHours(req.DefaultHours),
		Description:  req.Description,
		IsCustom:     true,
	}

	item, ok := s.store.RegisterProduct(product)
	if !ok {
		return model.Product{}, model.EstimateItem{}, errors.New("product id already registered")
	}

	s.notify("product_registered", fmt.Sprintf("Custom product '%s' added to catalog and estimate", product.Name), item)
	return product, item, nil
}

func (s *estimateService) UpdateDefaultHours(productID string, hours int) (model.Product, error) {
	product, ok := s.store.UpdateProductDefaultHours(productID, hours)
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	s.notify("default_hours_updated", fmt.Sprintf("Default hours for '%s' set to %d", product.Name, product.DefaultHours), product)
	return product, nil
}

func (s *estimateService) Summary() model.EstimateSummary {
	return s.store.Summary()
}

func (s *estimateService) AddItem(productID string) (AddItemResult, error) {
	product, ok := s.store.FindProduct(productID)
	if !ok {
		return AddItemResult{}, ErrProductNotFound
	}

	item, added := s.store.AddProduct(product)
	if !added {
		s.notify("duplicate_item", fmt.Sprintf("'%s' is already in the estimate", product.Name), item)
		return AddItemResult{Item: item, Duplicate: true}, nil
	}

	s.notify("item_added", fmt.Sprintf("'%s' added to estimate", product.Name), item)
	return AddItemResult{Item: item}, nil
}

func (s *estimateService) UpdateItemHours(productID string, hours int) (model.EstimateItem, bool) {
	item, ok := s.store.UpdateItemHours(productID, hours)
	if ok {
		s.notify("hours_updated", fmt.Sprintf("'%s' set to %d hours", item.Name, item.Hours), item)
	}
	return item, ok
}

func (s *estimateService) RemoveItem(productID string) {
	if s.store.RemoveItem(productID) {
		s.notify("item_removed", "Item removed from estimate", map[string]string{"product_id": productID})
	}
}

// SuggestFromBrief asks the AI collaborator for catalog suggestions. The
// suggestions carry no ids yet; MergeSuggestions assigns them when the user
// accepts.
func (s *estimateService) SuggestFromBrief(ctx context.Context, brief string) ([]model.ProductSuggestion, error) {
	if strings.TrimSpace(brief) == "" {
		return nil, ErrEmptyBrief
	}
	suggestions, err := llm.EstimateBrief(ctx, s.ai, brief)
	if err != nil {
		return nil, fmt.Errorf("ai estimation: %w", err)
	}
	return suggestions, nil
}

// MergeSuggestions registers each suggestion independently: one bad entry
// never blocks the rest. Each registered product is tagged custom, given a
// fresh uuid, and added straight to the estimate.
func (s *estimateService) MergeSuggestions(suggestions []model.ProductSuggestion) []model.EstimateItem {
	items := make([]model.EstimateItem, 0, len(suggestions))
	for _, sug := range suggestions {
		if errs := validator.ValidateStruct(&sug); len(errs) > 0 {
			continue
		}
		product := model.Product{
			ID:           uuid.NewString(),
			Name:         sug.Name,
			Category:     sug.Category,
			DefaultHours: sug.DefaultHours,
			Description:  sug.Description,
			IsCustom:     true,
		}
		item, ok := s.store.RegisterProduct(product)
		if !ok {
			continue
		}
		s.notify("product_registered", fmt.Sprintf("AI suggestion '%s' added to catalog and estimate", product.Name), item)
		items = append(items, item)
	}
	return items
}

// Submit pushes the current lines to the CRM. Success clears the estimate;
// any failure leaves it untouched so the user can retry explicitly.
func (s *estimateService) Submit(ctx context.Context) (crm.SubmissionResult, error) {
	items := s.store.Items()
	if len(items) == 0 {
		return crm.SubmissionResult{}, ErrEmptyEstimate
	}

	result, err := s.crm.SubmitEstimate(ctx, items)
	if err != nil {
		return crm.SubmissionResult{}, fmt.Errorf("submit estimate: %w", err)
	}
	if result.Success {
		s.store.Clear()
		s.notify("estimate_submitted", result.Message, map[string]int{"submitted_items": len(items)})
	}
	return result, nil
}
