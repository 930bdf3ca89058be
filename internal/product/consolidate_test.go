package product

import (
	"reflect"
	"testing"
)

func TestConsolidate_MergesByCode(t *testing.T) {
	t.Parallel()

	a := Record{Code: "P001", Description: "Parafuso M6x20", Quantity: 100, UnitPrice: 0.5, TotalPrice: 50, Source: "pedido_01.pdf"}
	b := Record{Code: "P001", Description: "Parafuso M6x20", Quantity: 50, UnitPrice: 0.5, TotalPrice: 25, Source: "pedido_02.pdf"}

	out := Consolidate([]Record{a, b})
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	got := out[0]
	if got.Quantity != 150 {
		t.Fatalf("quantity = %v, want 150", got.Quantity)
	}
	if got.UnitPrice != 0.5 {
		t.Fatalf("unit = %v, want 0.5", got.UnitPrice)
	}
	if got.TotalPrice != 75 {
		t.Fatalf("total = %v, want 75", got.TotalPrice)
	}
	if got.Source != "pedido_01.pdf, pedido_02.pdf" {
		t.Fatalf("source = %q", got.Source)
	}
}

func TestConsolidate_KeyPriority(t *testing.T) {
	t.Parallel()

	// same description, different codes: codes win, no merge
	out := Consolidate([]Record{
		{Code: "A1", Description: "Luva de Segurança", Quantity: 1, UnitPrice: 10},
		{Code: "B2", Description: "Luva de Segurança", Quantity: 2, UnitPrice: 10},
	})
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (distinct codes)", len(out))
	}

	// no code/reference: folded description decides
	out = Consolidate([]Record{
		{Description: "Parafuso M6x20.", Quantity: 1, UnitPrice: 1},
		{Description: "  parafuso  m6x20", Quantity: 2, UnitPrice: 1},
	})
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1 (folded descriptions match)", len(out))
	}
	if out[0].Quantity != 3 {
		t.Fatalf("quantity = %v, want 3", out[0].Quantity)
	}
}

func TestConsolidate_Idempotent(t *testing.T) {
	t.Parallel()

	in := []Record{
		{Code: "P001", Description: "Parafuso", Quantity: 100, UnitPrice: 0.5, Source: "a.pdf"},
		{Code: "P001", Description: "Parafuso", Quantity: 50, UnitPrice: 0.5, Source: "b.pdf"},
		{Code: "P002", Description: "Arruela", Quantity: 10, UnitPrice: 0.1, Source: "a.pdf"},
	}

	once := Consolidate(in)
	twice := Consolidate(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("consolidate not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestConsolidate_OrderIndependentReduction(t *testing.T) {
	t.Parallel()

	a := Record{Code: "P001", Description: "Parafuso", Quantity: 100, UnitPrice: 0.5, Source: "a.pdf"}
	b := Record{Code: "P002", Description: "Arruela", Quantity: 10, UnitPrice: 0.1, Source: "a.pdf"}
	c := Record{Code: "P001", Description: "Parafuso", Quantity: 50, UnitPrice: 0.5, Source: "c.pdf"}

	direct := Consolidate([]Record{a, b, c})

	partial := Consolidate([]Record{a, b})
	staged := Consolidate(append(partial, Consolidate([]Record{c})...))

	if !reflect.DeepEqual(direct, staged) {
		t.Fatalf("staged reduction differs:\ndirect: %+v\nstaged: %+v", direct, staged)
	}
}

func TestConsolidate_SortsByDescription(t *testing.T) {
	t.Parallel()

	out := Consolidate([]Record{
		{Description: "parafuso", Quantity: 1, UnitPrice: 1},
		{Description: "Arruela", Quantity: 1, UnitPrice: 1},
		{Description: "Bucha", Quantity: 1, UnitPrice: 1},
	})
	want := []string{"Arruela", "Bucha", "parafuso"}
	for i, d := range want {
		if out[i].Description != d {
			t.Fatalf("position %d = %q, want %q", i, out[i].Description, d)
		}
	}
}

func TestConsolidate_EmptyInput(t *testing.T) {
	t.Parallel()

	out := Consolidate(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("got %v, want empty slice", out)
	}
}

func TestConsolidate_DeduplicatesSources(t *testing.T) {
	t.Parallel()

	out := Consolidate([]Record{
		{Code: "P1", Description: "Item", Quantity: 1, UnitPrice: 1, Source: "a.pdf"},
		{Code: "P1", Description: "Item", Quantity: 1, UnitPrice: 1, Source: "a.pdf"},
		{Code: "P1", Description: "Item", Quantity: 1, UnitPrice: 1, Source: "b.pdf"},
	})
	if len(out) != 1 {
		t.Fatalf("got %d records", len(out))
	}
	if out[0].Source != "a.pdf, b.pdf" {
		t.Fatalf("source = %q, want deduplicated union", out[0].Source)
	}
}
