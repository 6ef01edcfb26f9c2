// Package ranking orders catalog products for the storefront showcase.
package ranking

import (
	"sort"

	"glamstore/internal/model"
)

// DefaultLimit is the size of the home-page product strip.
const DefaultLimit = 4

// BestSellers returns up to limit products ordered by total quantity sold
// across orders. Line items for products missing from the catalog are
// ignored, products that never sold are left out, and ties keep catalog
// order. limit <= 0 selects DefaultLimit. Inputs are not modified.
func BestSellers(orders []model.Order, products []model.Product, limit int) []model.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	position := make(map[string]int, len(products))
	for i, p := range products {
		if _, seen := position[p.ID]; !seen {
			position[p.ID] = i
		}
	}

	sold := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			if item.Quantity <= 0 {
				continue
			}
			if _, known := position[item.ProductID]; known {
				sold[item.ProductID] += item.Quantity
			}
		}
	}

	ids := make([]string, 0, len(sold))
	for id := range sold {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if sold[a] != sold[b] {
			return sold[a] > sold[b]
		}
		return position[a] < position[b]
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}
	ranked := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		ranked = append(ranked, products[position[id]])
	}
	return ranked
}

// Featured returns the catalog products named by ids, in the order of ids.
// Unknown and repeated ids are skipped.
func Featured(ids []string, products []model.Product) []model.Product {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		if _, seen := byID[p.ID]; !seen {
			byID[p.ID] = p
		}
	}

	picked := make(map[string]bool, len(ids))
	featured := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || picked[id] {
			continue
		}
		picked[id] = true
		featured = append(featured, p)
	}
	return featured
}

// Pad fills selected up to limit with catalog products not already present,
// in catalog order. The result never exceeds limit.
func Pad(selected, products []model.Product, limit int) []model.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]model.Product, 0, limit)
	taken := make(map[string]bool, limit)
	for _, p := range selected {
		if len(out) == limit {
			return out
		}
		if taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		out = append(out, p)
	}
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		out = append(out, p)
	}
	return out
}
