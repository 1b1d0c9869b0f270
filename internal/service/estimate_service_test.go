package service

import (
	"context"
	"errors"
	"testing"

	"go-estimate-ws/internal/crm"
	"go-estimate-ws/internal/model"
	"go-estimate-ws/internal/store"
)

type fakeCRM struct {
	catalog   []model.Product
	fetchErr  error
	result    crm.SubmissionResult
	submitErr error
	submitted [][]model.EstimateItem
}

func (f *fakeCRM) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	return f.catalog, f.fetchErr
}

func (f *fakeCRM) SubmitEstimate(ctx context.Context, items []model.EstimateItem) (crm.SubmissionResult, error) {
	f.submitted = append(f.submitted, items)
	return f.result, f.submitErr
}

type fakeAI struct {
	output string
	err    error
}

func (f *fakeAI) EstimateFromText(ctx context.Context, brief string) (string, error) {
	return f.output, f.err
}

type recordingNotifier struct {
	actions []string
}

func (r *recordingNotifier) Publish(action, message string, data interface{}) {
	r.actions = append(r.actions, action)
}

func newTestService(t *testing.T, crmClient *fakeCRM, aiClient *fakeAI) (EstimateService, *store.EstimateStore, *recordingNotifier) {
	t.Helper()
	if crmClient.catalog == nil {
		crmClient.catalog = crm.SeedCatalog()
	}
	st := store.New()
	notifier := &recordingNotifier{}
	svc := NewEstimateService(st, crmClient, aiClient, notifier)
	if err := svc.BootstrapCatalog(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	return svc, st, notifier
}

func TestCatalogPendingBeforeBootstrap(t *testing.T) {
	svc := NewEstimateService(store.New(), &fakeCRM{}, &fakeAI{}, nil)
	if _, err := svc.Catalog(); !errors.Is(err, ErrCatalogPending) {
		t.Fatalf("expected ErrCatalogPending, got %v", err)
	}
}

func TestBootstrapFailureLeavesCatalogPending(t *testing.T) {
	st := store.New()
	svc := NewEstimateService(st, &fakeCRM{fetchErr: errors.New("down")}, &fakeAI{}, nil)
	if err := svc.BootstrapCatalog(context.Background()); err == nil {
		t.Fatalf("expected bootstrap error")
	}
	if st.CatalogLoaded() {
		t.Fatalf("catalog must stay pending after a failed fetch")
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeCRM{}, &fakeAI{})
	if _, err := svc.AddItem("nope"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddItemDuplicateNotice(t *testing.T) {
	svc, _, notifier := newTestService(t, &fakeCRM{}, &fakeAI{})

	first, err := svc.AddItem("p1")
	if err != nil || first.Duplicate {
		t.Fatalf("first add failed: %+v %v", first, err)
	}
	second, err := svc.AddItem("p1")
	if err != nil {
		t.Fatalf("duplicate add must not be an error: %v", err)
	}
	if !second.Duplicate {
		t.Fatalf("expected duplicate notice")
	}
	if len(svc.Summary().Items) != 1 {
		t.Fatalf("duplicate add must not grow the estimate")
	}

	found := false
	for _, a := range notifier.actions {
		if a == "duplicate_item" {
			found = true
		}
	}
	if !found {
		t.Fatalf("duplicate add should publish a duplicate_item event, got %v", notifier.actions)
	}
}

func TestCreateCustomProductValidation(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeCRM{}, &fakeAI{})

	if _, _, err := svc.CreateCustomProduct(&model.CustomProductRequest{Category: "Web", DefaultHours: 5}); err == nil {
		t.Fatalf("missing name must be rejected")
	}
	if _, _, err := svc.CreateCustomProduct(&model.CustomProductRequest{Name: "X", DefaultHours: 5}); err == nil {
		t.Fatalf("missing category must be rejected")
	}
	if _, _, err := svc.CreateCustomProduct(&model.CustomProductRequest{Name: "X", Category: "Web", DefaultHours: -1}); err == nil {
		t.Fatalf("negative default hours must be rejected")
	}
	if len(svc.Summary().Items) != 0 {
		t.Fatalf("rejected input must leave state unchanged")
	}
}

func TestCreateCustomProductRegistersAndAdds(t *testing.T) {
	svc, st, _ := newTestService(t, &fakeCRM{}, &fakeAI{})

	product, item, err := svc.CreateCustomProduct(&model.CustomProductRequest{Name: "X", Category: "Web", DefaultHours: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !product.IsCustom || product.ID == "" {
		t.Fatalf("custom product missing provenance or id: %+v", product)
	}
	if item.Hours != 10 || item.Subtotal != 10*model.HourlyRate {
		t.Fatalf("unexpected line: %+v", item)
	}
	if len(st.Items()) != 1 {
		t.Fatalf("estimate must already contain the new product")
	}
	if len(st.Catalog()) != 9 {
		t.Fatalf("catalog must have grown to 9, got %d", len(st.Catalog()))
	}
}

func TestSuggestFromBriefEmptyBrief(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeCRM{}, &fakeAI{})
	if _, err := svc.SuggestFromBrief(context.Background(), "   "); !errors.Is(err, ErrEmptyBrief) {
		t.Fatalf("expected ErrEmptyBrief, got %v", err)
	}
}

func TestSuggestFromBriefCollaboratorFailure(t *testing.T) {
	svc, st, _ := newTestService(t, &fakeCRM{}, &fakeAI{err: errors.New("quota exceeded")})
	if _, err := svc.SuggestFromBrief(context.Background(), "need a website"); err == nil {
		t.Fatalf("expected collaborator error")
	}
	if len(st.Items()) != 0 || len(st.Catalog()) != 8 {
		t.Fatalf("a failed AI call must leave the store untouched")
	}
}

func TestSuggestThenMergeFlow(t *testing.T) {
	ai := &fakeAI{output: `{"products": [
		{"name": "Landing Page", "category": "Web", "default_hours": 20},
		{"name": "Ad Campaign", "category": "Marketing", "default_hours": 12}
	]}`}
	svc, st, _ := newTestService(t, &fakeCRM{}, ai)

	suggestions, err := svc.SuggestFromBrief(context.Background(), "client needs a landing page and ads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := svc.MergeSuggestions(suggestions)
	if len(items) != 2 {
		t.Fatalf("expected 2 merged lines, got %d", len(items))
	}
	if len(st.Catalog()) != 10 {
		t.Fatalf("catalog should have grown by 2, got %d", len(st.Catalog()))
	}
	for _, it := range items {
		p, ok := st.FindProduct(it.ProductID)
		if !ok || !p.IsCustom {
			t.Fatalf("merged suggestion must be a custom catalog entry: %+v", p)
		}
	}
}

func TestMergeSuggestionsSkipsInvalidEntriesIndependently(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeCRM{}, &fakeAI{})

	items := svc.MergeSuggestions([]model.ProductSuggestion{
		{Name: "", Category: "Web", DefaultHours: 5},
		{Name: "Keeper", Category: "Web", DefaultHours: 5},
		{Name: "Zero", Category: "Web", DefaultHours: 0},
	})
	if len(items) != 1 || items[0].Name != "Keeper" {
		t.Fatalf("expected only the valid suggestion merged, got %+v", items)
	}
}

func TestSubmitEmptyEstimate(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeCRM{}, &fakeAI{})
	if _, err := svc.Submit(context.Background()); !errors.Is(err, ErrEmptyEstimate) {
		t.Fatalf("expected ErrEmptyEstimate, got %v", err)
	}
}

func TestSubmitFailurePreservesEstimate(t *testing.T) {
	crmClient := &fakeCRM{result: crm.SubmissionResult{Success: false, Message: "Failed to send estimate to HubSpot. Please try again."}}
	svc, st, _ := newTestService(t, crmClient, &fakeAI{})
	svc.AddItem("p1")
	svc.AddItem("p5")

	before := len(st.Items())
	res, err := svc.Submit(context.Background())
	if err != nil {
		t.Fatalf("a success=false result is not an error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected failed submission")
	}
	if len(st.Items()) != before {
		t.Fatalf("failed submission must preserve the estimate: %d != %d", len(st.Items()), before)
	}
}

func TestSubmitErrorPreservesEstimate(t *testing.T) {
	crmClient := &fakeCRM{submitErr: errors.New("connection refused")}
	svc, st, _ := newTestService(t, crmClient, &fakeAI{})
	svc.AddItem("p1")

	if _, err := svc.Submit(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
	if len(st.Items()) != 1 {
		t.Fatalf("transport failure must preserve the estimate")
	}
}

func TestSubmitSuccessClearsEstimate(t *testing.T) {
	crmClient := &fakeCRM{result: crm.SubmissionResult{Success: true, Message: "Estimate successfully sent to HubSpot!"}}
	svc, st, notifier := newTestService(t, crmClient, &fakeAI{})
	svc.AddItem("p1")
	svc.AddItem("p5")

	res, err := svc.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success")
	}
	if len(st.Items()) != 0 {
		t.Fatalf("successful submission must clear the estimate")
	}
	if len(crmClient.submitted) != 1 || len(crmClient.submitted[0]) != 2 {
		t.Fatalf("expected 2 submitted lines, got %+v", crmClient.submitted)
	}

	found := false
	for _, a := range notifier.actions {
		if a == "estimate_submitted" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected estimate_submitted event, got %v", notifier.actions)
	}
}
