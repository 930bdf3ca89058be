package pipeline

import "github.com/gabrielfurtado/pedido-consolidador/internal/product"

// FileFailure records why one document contributed nothing to the batch.
type FileFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// ProcessingInfo summarizes the batch run itself, independent of the
// consolidated output.
type ProcessingInfo struct {
	FilesAttempted    int           `json:"files_attempted"`
	FilesSucceeded    int           `json:"files_succeeded"`
	ExtractedProducts int           `json:"extracted_products"` // raw count before consolidation
	Failures          []FileFailure `json:"failures,omitempty"`
}

// Report is the aggregate result of one batch run. Products are consolidated
// and sorted; TotalValue is the sum of their recomputed totals.
type Report struct {
	Products       []product.Record `json:"products"`
	TotalProducts  int              `json:"total_products"`
	TotalValue     float64          `json:"total_value"`
	ProcessingInfo ProcessingInfo   `json:"processing_info"`
}
