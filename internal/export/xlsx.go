// Package export renders a finished pipeline.Report as XLSX or CSV with the
// fixed column order: código, referência, descrição, quantidade, valor
// unitário, valor total, fonte.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gabrielfurtado/pedido-consolidador/internal/pipeline"
	"github.com/gabrielfurtado/pedido-consolidador/internal/product"
)

var columns = []string{
	"Código",
	"Referência",
	"Descrição",
	"Quantidade",
	"Valor Unitário",
	"Valor Total",
	"Fonte",
}

// WriteXLSX returns an XLSX workbook (as bytes) for a consolidated report:
// a summary block on top, then the product table.
func WriteXLSX(report *pipeline.Report, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Pedido de Compra"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	// summary block
	write(1, 1, "PEDIDO DE COMPRA CONSOLIDADO")
	write(1, 2, "Data de Geração:")
	write(2, 2, time.Now().Format("02/01/2006 15:04:05"))
	write(1, 3, "Total de Produtos:")
	write(2, 3, report.TotalProducts)
	write(1, 4, "Valor Total:")
	write(2, 4, product.FormatBRL(report.TotalValue))
	write(1, 5, "Arquivos Processados:")
	write(2, 5, fmt.Sprintf("%d/%d", report.ProcessingInfo.FilesSucceeded, report.ProcessingInfo.FilesAttempted))

	const headerRow = 7
	for i, h := range columns {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, r := range report.Products {
		write(1, row, orDash(r.Code))
		write(2, row, orDash(r.Reference))
		write(3, row, r.Description)
		write(4, row, r.Quantity)
		write(5, row, r.UnitPrice)
		write(6, row, r.TotalPrice)
		write(7, row, r.Source)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 48)
	_ = f.SetColWidth(sheet, "D", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", len(report.Products),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
