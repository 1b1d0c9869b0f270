package model

// HourlyRate is the single global billing rate in euros per hour. Subtotals
// are always hours * HourlyRate, never stored independently.
const HourlyRate = 125

// EstimateItem is one line of the current estimate. Name and Category are
// snapshots taken when the line is created; later catalog edits do not flow
// back into existing lines.
type EstimateItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Hours     int    `json:"hours"`
	Subtotal  int    `json:"subtotal"`
}

// CategorySummary aggregates the lines of one category.
type CategorySummary struct {
	Category   string `json:"category"`
	TotalHours int    `json:"total_hours"`
	TotalCost  int    `json:"total_cost"`
}

// EstimateSummary is the derived view of the whole estimate.
type EstimateSummary struct {
	Items      []EstimateItem    `json:"items"`
	Categories []CategorySummary `json:"categories"`
	GrandTotal int               `json:"grand_total"`
}

// ClampHours normalizes hour input coming from live numeric fields. Negative
// values collapse to zero instead of being rejected, since the field passes
// through invalid intermediate states while the user types. Every numeric
// edit path goes through this one function.
func ClampHours(hours int) int {
	if hours < 0 {
		return 0
	}
	return hours
}
