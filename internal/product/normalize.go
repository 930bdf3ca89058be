package product

import "path/filepath"

// Normalize maps one raw product object from the model into a canonical
// Record. Returns nil when the object has no description: such entries are
// discarded and never counted as extracted.
//
// Derivations when the model supplies a partial money pair:
//   - total missing, quantity and unit price positive → total = qty * unit
//   - unit missing, quantity and total positive       → unit = total / qty
//
// A zero quantity blocks the unit-price derivation (division by zero); the
// supplied total is kept as-is and consolidation will later recompute it.
func Normalize(raw map[string]any, sourceFile string) *Record {
	if raw == nil {
		return nil
	}

	desc := ParseString(raw["descricao"])
	if desc == "" {
		return nil
	}

	rec := &Record{
		Code:        ParseString(raw["codigo"]),
		Reference:   ParseString(raw["referencia"]),
		Description: desc,
		Quantity:    ParseNumber(raw["quantidade"]),
		UnitPrice:   ParseNumber(raw["valor_unitario"]),
		TotalPrice:  ParseNumber(raw["valor_total"]),
		Source:      filepath.Base(sourceFile),
	}

	if rec.TotalPrice == 0 && rec.Quantity > 0 && rec.UnitPrice > 0 {
		rec.TotalPrice = rec.Quantity * rec.UnitPrice
	}
	if rec.UnitPrice == 0 && rec.Quantity > 0 && rec.TotalPrice > 0 {
		rec.UnitPrice = rec.TotalPrice / rec.Quantity
	}

	return rec
}
