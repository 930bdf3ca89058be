// Package product holds the canonical line-item record and the logic that
// validates, types and consolidates the raw objects coming back from the
// model.
package product

// Record is the canonical, post-validation representation of one product
// line item. After consolidation every record satisfies
// TotalPrice == Quantity * UnitPrice.
type Record struct {
	Code        string  `json:"codigo,omitempty"`
	Reference   string  `json:"referencia,omitempty"`
	Description string  `json:"descricao"`
	Quantity    float64 `json:"quantidade"`
	UnitPrice   float64 `json:"valor_unitario"`
	TotalPrice  float64 `json:"valor_total"`
	Source      string  `json:"fonte"` // contributing file names, comma-joined
}
