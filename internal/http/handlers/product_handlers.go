package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/storefront-api/internal/catalog"
)

// parseQueryParams turns the listing query string into catalog params.
// limit and page must be positive integers when present.
func parseQueryParams(q url.Values) (catalog.Params, []ValidationError) {
	p := catalog.Params{
		Limit:     catalog.DefaultLimit,
		Page:      catalog.DefaultPage,
		Sort:      q.Get("sort"),
		TextQuery: q.Get("query"),
		Category:  q.Get("category"),
		Status:    catalog.ParseStatus(q.Get("status")),
	}
	if stock := catalog.ParseStatus(q.Get("stock")); stock != nil {
		p.InStock = *stock
	}

	var errs []ValidationError
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, ValidationError{Field: "limit", Description: "limit must be a positive integer"})
		}
		p.Limit = n
	}
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, ValidationError{Field: "page", Description: "page must be a positive integer"})
		}
		p.Page = n
	}
	return p, errs
}

// GetProductsHandler godoc
// @Summary List products
// @Description Filters, sorts and paginates the catalog
// @Tags products
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param page query int false "Page number (default 1)"
// @Param sort query string false "Sort by price" Enums(asc, desc)
// @Param query query string false "Text matched against title and description"
// @Param category query string false "Category"
// @Param status query string false "Availability (true, 1, on)"
// @Param stock query string false "Only products in stock (true, 1, on)"
// @Success 200 {object} ProductsPage
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	params, errs := parseQueryParams(r.URL.Query())
	if len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	res, err := s.catalog.Query(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, newProductsPage(res)); err != nil {
		s.log.Warn("failed to write JSON response", "error", err)
	}
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param pid path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/products/{pid} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := s.catalog.Get(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, product)
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog and broadcasts the new list
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /api/products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	created, err := s.catalog.Create(r.Context(), req.toModel())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.productsChanged(r.Context())
	s.writeSuccess(w, http.StatusCreated, created)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update; id and code cannot change
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pid path string true "Product ID"
// @Param product body ProductUpdateRequest true "Fields to change"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/products/{pid} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID != nil && *req.ID != pid {
		s.writeMessage(w, http.StatusBadRequest, "product id cannot be changed")
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	if req.Code != nil {
		current, err := s.catalog.Get(r.Context(), pid)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if *req.Code != current.Code {
			s.writeMessage(w, http.StatusBadRequest, "product code cannot be changed")
			return
		}
	}

	updated, err := s.catalog.Update(r.Context(), pid, req.toPatch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.productsChanged(r.Context())
	s.writeSuccess(w, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Cart lines that reference the product are kept and read back with a null product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param pid path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/products/{pid} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "pid")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.productsChanged(r.Context())
	s.writeMessage(w, http.StatusOK, "product deleted")
}
