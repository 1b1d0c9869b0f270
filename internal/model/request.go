package model

// Request bodies for the API. Validation tags are enforced through
// pkg/validator at the service boundary.

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type UpdateHoursRequest struct {
	Hours int `json:"hours"`
}

type CustomProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	DefaultHours int    `json:"default_hours" validate:"gte=0"`
	Description  string `json:"description"`
}

type MergeRequest struct {
	Products []ProductSuggestion `json:"products" validate:"required,min=1"`
}

type BriefRequest struct {
	Brief string `json:"brief" validate:"required"`
}
