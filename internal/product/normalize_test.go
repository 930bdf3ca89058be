package product

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize_WellFormedProducts(t *testing.T) {
	t.Parallel()

	raws := []map[string]any{
		{"codigo": "P001", "descricao": "Parafuso M6x20", "quantidade": 100.0, "valor_unitario": 0.5, "valor_total": 50.0},
		{"codigo": "P002", "descricao": "Arruela Lisa M6", "quantidade": 200.0, "valor_unitario": 0.1, "valor_total": 20.0},
		{"codigo": "P003", "descricao": "Porca M6", "quantidade": 100.0, "valor_unitario": 0.3, "valor_total": 30.0},
	}

	var got []Record
	for _, raw := range raws {
		rec := Normalize(raw, "/uploads/pedido_01.pdf")
		if rec == nil {
			t.Fatalf("expected record for %v", raw)
		}
		got = append(got, *rec)
	}

	if len(got) != len(raws) {
		t.Fatalf("accepted %d records, want %d", len(got), len(raws))
	}
	for _, r := range got {
		if !almostEqual(r.TotalPrice, r.Quantity*r.UnitPrice) {
			t.Fatalf("%s: total=%v, want qty*unit=%v", r.Description, r.TotalPrice, r.Quantity*r.UnitPrice)
		}
		if r.Source != "pedido_01.pdf" {
			t.Fatalf("source = %q, want basename", r.Source)
		}
	}
}

func TestNormalize_RejectsMissingDescription(t *testing.T) {
	t.Parallel()

	cases := []map[string]any{
		nil,
		{},
		{"descricao": nil, "quantidade": 10.0},
		{"descricao": "", "quantidade": 10.0},
		{"descricao": "   ", "quantidade": 10.0},
		{"codigo": "P001", "quantidade": 10.0},
	}
	for _, raw := range cases {
		if rec := Normalize(raw, "f.pdf"); rec != nil {
			t.Fatalf("expected nil for %v, got %+v", raw, rec)
		}
	}
}

func TestNormalize_DerivesTotalFromQuantityAndUnit(t *testing.T) {
	t.Parallel()

	rec := Normalize(map[string]any{
		"descricao":      "Cabo Flexível 2,5mm",
		"quantidade":     40.0,
		"valor_unitario": 2.5,
	}, "f.pdf")
	if rec == nil {
		t.Fatal("expected record")
	}
	if !almostEqual(rec.TotalPrice, 100.0) {
		t.Fatalf("total = %v, want 100", rec.TotalPrice)
	}
}

func TestNormalize_DerivesUnitFromTotalAndQuantity(t *testing.T) {
	t.Parallel()

	rec := Normalize(map[string]any{
		"descricao":   "Tinta Acrílica 18L",
		"quantidade":  4.0,
		"valor_total": 360.0,
	}, "f.pdf")
	if rec == nil {
		t.Fatal("expected record")
	}
	if !almostEqual(rec.UnitPrice, 90.0) {
		t.Fatalf("unit = %v, want 90", rec.UnitPrice)
	}
}

func TestNormalize_ZeroQuantityGuardsDivision(t *testing.T) {
	t.Parallel()

	// qty=0 and unit=0 but a supplied total: unit stays 0 (no division by
	// zero) and the supplied total survives normalization. Consolidation
	// recomputes it to 0 later; that outcome is deliberate.
	rec := Normalize(map[string]any{
		"descricao":      "X",
		"quantidade":     0.0,
		"valor_unitario": 0.0,
		"valor_total":    100.0,
	}, "f.pdf")
	if rec == nil {
		t.Fatal("expected record")
	}
	if rec.UnitPrice != 0 {
		t.Fatalf("unit = %v, want 0", rec.UnitPrice)
	}
	if !almostEqual(rec.TotalPrice, 100.0) {
		t.Fatalf("total = %v, want 100 preserved pre-consolidation", rec.TotalPrice)
	}

	merged := Consolidate([]Record{*rec})
	if len(merged) != 1 {
		t.Fatalf("got %d records", len(merged))
	}
	if merged[0].TotalPrice != 0 {
		t.Fatalf("post-consolidation total = %v, want 0", merged[0].TotalPrice)
	}
}

func TestNormalize_StringNumbers(t *testing.T) {
	t.Parallel()

	rec := Normalize(map[string]any{
		"descricao":      "Fita Isolante",
		"quantidade":     "12",
		"valor_unitario": "R$ 3,50",
		"valor_total":    "R$ 42,00",
	}, "f.pdf")
	if rec == nil {
		t.Fatal("expected record")
	}
	if !almostEqual(rec.Quantity, 12) || !almostEqual(rec.UnitPrice, 3.5) || !almostEqual(rec.TotalPrice, 42) {
		t.Fatalf("got qty=%v unit=%v total=%v", rec.Quantity, rec.UnitPrice, rec.TotalPrice)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{12.5, 12.5},
		{-3.0, 0}, // negative clamps: quantities/prices are non-negative
		{"", 0},
		{"abc", 0},
		{"100", 100},
		{"12.5", 12.5},
		{"R$ 0,50", 0.5},
		{"R$ 1.234,56", 1234.56},
		{"1.234,56", 1234.56},
		{true, 0},
	}
	for _, c := range cases {
		if got := ParseNumber(c.in); !almostEqual(got, c.want) {
			t.Fatalf("ParseNumber(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{0.5, "R$ 0,50"},
		{75, "R$ 75,00"},
		{1234.56, "R$ 1.234,56"},
		{1234567.8, "R$ 1.234.567,80"},
	}
	for _, c := range cases {
		if got := FormatBRL(c.in); got != c.want {
			t.Fatalf("FormatBRL(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
