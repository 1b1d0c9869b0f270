package model

// Product is one catalog entry. Seed products come from the CRM at startup;
// custom and AI-suggested products are appended during the session with
// IsCustom set. The flag records provenance only, behavior is identical.
type Product struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	DefaultHours int    `json:"default_hours" validate:"gte=0"`
	Description  string `json:"description,omitempty"`
	IsCustom     bool   `json:"is_custom"`
}

// ProductSuggestion is what the AI collaborator returns. It carries no id and
// no provenance; both are assigned when the suggestion is merged into the
// catalog.
type ProductSuggestion struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	DefaultHours int    `json:"default_hours" validate:"gte=1"`
	Description  string `json:"description,omitempty"`
}
