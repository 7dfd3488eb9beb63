package catalog

import "github.com/rogerio-castellano/storefront-api/internal/models"

// PagedResult is one page of the filtered, sorted catalog.
type PagedResult struct {
	Items       []models.Product `json:"items"`
	TotalDocs   int              `json:"totalDocs"`
	TotalPages  int              `json:"totalPages"`
	Page        int              `json:"page"`
	Limit       int              `json:"limit"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
	PrevPage    *int             `json:"prevPage"`
	NextPage    *int             `json:"nextPage"`
	PrevLink    *string          `json:"prevLink"`
	NextLink    *string          `json:"nextLink"`
}

func totalPages(totalDocs, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (totalDocs + limit - 1) / limit
}

func (s *Service) newPagedResult(p Params, items []models.Product, totalDocs int) PagedResult {
	res := PagedResult{
		Items:      items,
		TotalDocs:  totalDocs,
		TotalPages: totalPages(totalDocs, p.Limit),
		Page:       p.Page,
		Limit:      p.Limit,
	}
	res.HasPrevPage = p.Page > 1
	res.HasNextPage = p.Page < res.TotalPages

	if res.HasPrevPage {
		prev := p.Page - 1
		link := s.link(p, prev)
		res.PrevPage, res.PrevLink = &prev, &link
	}
	if res.HasNextPage {
		next := p.Page + 1
		link := s.link(p, next)
		res.NextPage, res.NextLink = &next, &link
	}
	return res
}

func (s *Service) link(p Params, page int) string {
	return s.baseURL + "?" + p.values(page).Encode()
}
