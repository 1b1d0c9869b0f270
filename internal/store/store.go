package store

import (
	"sort"
	"sync"

	"go-estimate-ws/internal/model"
)

// EstimateStore owns the product catalog and the current estimate for one
// session. The catalog only ever grows within the session; the estimate grows
// and shrinks with user edits and is cleared as a whole after a successful
// submission. Nothing here is persisted.
//
// Every operation is total: any input leaves the store in a valid state. The
// only caller-visible notice is the duplicate-add case, which is informational
// and not an error.
type EstimateStore struct {
	mu      sync.RWMutex
	catalog []model.Product
	items   []model.EstimateItem
	loaded  bool
}

func New() *EstimateStore {
	return &EstimateStore{}
}

// LoadCatalog installs the seed catalog fetched from the CRM collaborator.
func (s *EstimateStore) LoadCatalog(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = append([]model.Product(nil), products...)
	s.loaded = true
}

// CatalogLoaded reports whether the bootstrap fetch has resolved. Estimate
// operations are never blocked on this, only the catalog listing is.
func (s *EstimateStore) CatalogLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *EstimateStore) Catalog() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *EstimateStore) FindProduct(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// AddProduct appends an estimate line for the given catalog product. The
// second return is false when a line for that product already exists; the
// estimate is left untouched in that case and the existing line is returned.
func (s *EstimateStore) AddProduct(p model.Product) (model.EstimateItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(p)
}

func (s *EstimateStore) addLocked(p model.Product) (model.EstimateItem, bool) {
	for _, it := range s.items {
		if it.ProductID == p.ID {
			return it, false
		}
	}
	hours := p.DefaultHours
	if hours <= 0 {
		hours = 1 // a fresh line never starts at zero hours
	}
	item := model.EstimateItem{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Hours:     hours,
		Subtotal:  hours * model.HourlyRate,
	}
	s.items = append(s.items, item)
	return item, true
}

// UpdateItemHours sets the hours of an existing line and recomputes its
// subtotal. Input is clamped, never rejected. A missing line is a no-op, not
// an error: it may have been removed while an edit was in flight.
func (s *EstimateStore) UpdateItemHours(productID string, hours int) (model.EstimateItem, bool) {
	hours = model.ClampHours(hours)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Hours = hours
			s.items[i].Subtotal = hours * model.HourlyRate
			return s.items[i], true
		}
	}
	return model.EstimateItem{}, false
}

// RemoveItem drops the line for productID. Absent lines are a silent no-op.
func (s *EstimateStore) RemoveItem(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// RegisterProduct appends a product to the catalog and immediately adds it to
// the estimate: a freshly defined or AI-suggested product is assumed wanted.
// A colliding id leaves both collections untouched; the caller is expected to
// have generated a fresh one.
func (s *EstimateStore) RegisterProduct(p model.Product) (model.EstimateItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.catalog {
		if existing.ID == p.ID {
			return model.EstimateItem{}, false
		}
	}
	s.catalog = append(s.catalog, p)
	item, _ := s.addLocked(p)
	return item, true
}

// UpdateProductDefaultHours mutates only the catalog entry. Existing estimate
// lines keep the hours they were created or edited with.
func (s *EstimateStore) UpdateProductDefaultHours(productID string, hours int) (model.Product, bool) {
	hours = model.ClampHours(hours)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.catalog {
		if s.catalog[i].ID == productID {
			s.catalog[i].DefaultHours = hours
			return s.catalog[i], true
		}
	}
	return model.Product{}, false
}

func (s *EstimateStore) Items() []model.EstimateItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EstimateItem, len(s.items))
	copy(out, s.items)
	return out
}

// Clear empties the estimate. Called only after a successful submission.
func (s *EstimateStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Summary recomputes the derived view from the current lines. Categories are
// ordered lexicographically so re-renders stay visually stable regardless of
// insertion order.
func (s *EstimateStore) Summary() model.EstimateSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := model.EstimateSummary{
		Items: append([]model.EstimateItem{}, s.items...),
	}
	byCategory := make(map[string]*model.CategorySummary)
	for _, it := range s.items {
		cs, ok := byCategory[it.Category]
		if !ok {
			cs = &model.CategorySummary{Category: it.Category}
			byCategory[it.Category] = cs
		}
		cs.TotalHours += it.Hours
		cs.TotalCost += it.Subtotal
		summary.GrandTotal += it.Subtotal
	}

	categories := make([]model.CategorySummary, 0, len(byCategory))
	for _, cs := range byCategory {
		categories = append(categories, *cs)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})
	summary.Categories = categories
	return summary
}
