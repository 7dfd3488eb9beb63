package repo

import (
	"sort"
	"strings"

	"github.com/rogerio-castellano/storefront-api/internal/models"
)

type SortOrder string

const (
	SortNone SortOrder = ""
	// SortPriceAsc and SortPriceDesc order by price; ties keep store order.
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

// ProductFilter selects, orders and slices products. All predicates are
// ANDed; TextQuery matches title OR description.
type ProductFilter struct {
	TextQuery string
	Category  string
	Status    *bool
	InStock   bool
	Sort      SortOrder
	Offset    int
	// Limit <= 0 means no limit.
	Limit int
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.TextQuery != "" && !containsFold(p.Title, pf.TextQuery) && !containsFold(p.Description, pf.TextQuery) {
		return false
	}
	if pf.Category != "" && !containsFold(p.Category, pf.Category) {
		return false
	}
	if pf.Status != nil && p.Status != *pf.Status {
		return false
	}
	if pf.InStock && p.Stock <= 0 {
		return false
	}
	return true
}

func sortProducts(products []models.Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}
}

// applyFilter runs pf over products (already in store order) the way the
// database backends do it in their queries.
func applyFilter(products []models.Product, pf ProductFilter) ([]models.Product, int) {
	filtered := []models.Product{}
	for _, p := range products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	sortProducts(filtered, pf.Sort)

	start := clamp(pf.Offset, 0, len(filtered))
	end := len(filtered)
	if pf.Limit > 0 {
		end = clamp(start+pf.Limit, start, len(filtered))
	}

	page := make([]models.Product, end-start)
	copy(page, filtered[start:end])
	return page, len(filtered)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// escapeLike escapes the LIKE wildcards in s so it matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
