package product

import (
	"sort"
	"strings"
)

// Consolidate merges records that share a consolidation key. Quantities sum;
// the unit price keeps the first non-zero value seen as the representative
// price per unit; the total is always recomputed as quantity * unit price
// after the merge (summing supplied totals would compound model rounding
// noise). Sources union, comma-joined in first-seen order. Output is sorted
// ascending by case-insensitive description. Consolidation is idempotent and
// order-independent over the grouping key.
func Consolidate(records []Record) []Record {
	if len(records) == 0 {
		return []Record{}
	}

	type group struct {
		rec     Record
		sources []string
		seen    map[string]struct{}
	}

	byKey := make(map[string]*group, len(records))
	order := make([]string, 0, len(records))

	for _, r := range records {
		key := Key(r)
		if key == "" {
			continue
		}

		g, ok := byKey[key]
		if !ok {
			g = &group{rec: r, seen: make(map[string]struct{})}
			g.rec.Source = ""
			byKey[key] = g
			order = append(order, key)
		} else {
			g.rec.Quantity += r.Quantity
			if g.rec.UnitPrice == 0 && r.UnitPrice > 0 {
				g.rec.UnitPrice = r.UnitPrice
			}
			// keep the first non-empty code/reference seen
			if g.rec.Code == "" {
				g.rec.Code = r.Code
			}
			if g.rec.Reference == "" {
				g.rec.Reference = r.Reference
			}
		}

		for _, src := range splitSources(r.Source) {
			if _, dup := g.seen[src]; dup {
				continue
			}
			g.seen[src] = struct{}{}
			g.sources = append(g.sources, src)
		}
	}

	out := make([]Record, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		g.rec.TotalPrice = g.rec.Quantity * g.rec.UnitPrice
		g.rec.Source = strings.Join(g.sources, ", ")
		out = append(out, g.rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Description) < strings.ToLower(out[j].Description)
	})
	return out
}

// splitSources undoes the comma-join on already-consolidated input so
// re-consolidation stays idempotent.
func splitSources(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
