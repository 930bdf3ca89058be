package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gabrielfurtado/pedido-consolidador/internal/pipeline"
)

// WriteCSV streams the product table to w with the same column order as the
// XLSX export. Numbers use plain decimal points so the file round-trips
// through spreadsheet imports.
func WriteCSV(w io.Writer, report *pipeline.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, r := range report.Products {
		row := []string{
			orDash(r.Code),
			orDash(r.Reference),
			r.Description,
			strconv.FormatFloat(r.Quantity, 'f', -1, 64),
			strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(r.TotalPrice, 'f', 2, 64),
			r.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
