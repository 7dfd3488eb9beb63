package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/storefront-api/internal/repo"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params are the already-coerced inputs of a catalog query.
type Params struct {
	Limit     int
	Page      int
	Sort      string
	TextQuery string
	Category  string
	Status    *bool
	InStock   bool
}

// ParseStatus reads the truthy-string convention used by the listing query:
// "true", "1" and "on" mean true, any other non-empty value means false and
// an empty value means no status filter.
func ParseStatus(s string) *bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v := false
	switch strings.ToLower(s) {
	case "true", "1", "on":
		v = true
	}
	return &v
}

func parseSort(s string) repo.SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(repo.SortPriceAsc):
		return repo.SortPriceAsc
	case string(repo.SortPriceDesc):
		return repo.SortPriceDesc
	default:
		return repo.SortNone
	}
}

// normalized returns p with the limit clamped and the sort key canonical.
func (p Params) normalized() Params {
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.Sort = string(parseSort(p.Sort))
	p.TextQuery = strings.TrimSpace(p.TextQuery)
	p.Category = strings.TrimSpace(p.Category)
	return p
}

// filter reports false when the page offset would overflow an int.
func (p Params) filter() (repo.ProductFilter, bool) {
	inRange := p.Page-1 <= math.MaxInt/p.Limit
	offset := 0
	if inRange {
		offset = (p.Page - 1) * p.Limit
	}
	return repo.ProductFilter{
		TextQuery: p.TextQuery,
		Category:  p.Category,
		Status:    p.Status,
		InStock:   p.InStock,
		Sort:      repo.SortOrder(p.Sort),
		Offset:    offset,
		Limit:     p.Limit,
	}, inRange
}

// values renders p as a query string for the given page. Empty filters are
// left out.
func (p Params) values(page int) url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(p.Limit))
	v.Set("page", strconv.Itoa(page))
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.TextQuery != "" {
		v.Set("query", p.TextQuery)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Status != nil {
		v.Set("status", strconv.FormatBool(*p.Status))
	}
	if p.InStock {
		v.Set("stock", "true")
	}
	return v
}
