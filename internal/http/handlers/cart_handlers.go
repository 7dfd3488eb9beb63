package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/storefront-api/internal/cart"
)

// CreateCartHandler godoc
// @Summary Create an empty cart
// @Tags carts
// @Produce json
// @Success 201 {object} Envelope
// @Router /api/carts [post]
func (s *Server) CreateCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, c)
}

// GetCartHandler godoc
// @Summary Get a cart with product details
// @Tags carts
// @Produce json
// @Param cid path string true "Cart ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/carts/{cid} [get]
func (s *Server) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.Get(r.Context(), chi.URLParam(r, "cid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, c)
}

// AddCartItemHandler godoc
// @Summary Add one unit of a product to a cart
// @Tags carts
// @Produce json
// @Param cid path string true "Cart ID"
// @Param pid path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/carts/{cid}/products/{pid} [post]
func (s *Server) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.AddItem(r.Context(), chi.URLParam(r, "cid"), chi.URLParam(r, "pid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, c)
}

// UpdateCartItemHandler godoc
// @Summary Set the quantity of a cart line
// @Tags carts
// @Accept json
// @Produce json
// @Param cid path string true "Cart ID"
// @Param pid path string true "Product ID"
// @Param body body QuantityRequest true "New quantity (>= 1)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/carts/{cid}/products/{pid} [put]
func (s *Server) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	c, err := s.carts.SetQuantity(r.Context(), chi.URLParam(r, "cid"), chi.URLParam(r, "pid"), *req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, c)
}

// RemoveCartItemHandler godoc
// @Summary Remove a product line from a cart
// @Tags carts
// @Produce json
// @Param cid path string true "Cart ID"
// @Param pid path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Cart missing or product not in cart"
// @Router /api/carts/{cid}/products/{pid} [delete]
func (s *Server) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.RemoveItem(r.Context(), chi.URLParam(r, "cid"), chi.URLParam(r, "pid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, c)
}

// ReplaceCartHandler godoc
// @Summary Replace every line of a cart
// @Tags carts
// @Accept json
// @Produce json
// @Param cid path string true "Cart ID"
// @Param body body ReplaceCartRequest true "New lines"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/carts/{cid} [put]
func (s *Server) ReplaceCartHandler(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCartRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	lines := make([]cart.Line, len(req.Products))
	for i, p := range req.Products {
		lines[i] = cart.Line{ProductID: p.Product, Quantity: p.Quantity}
	}

	c, err := s.carts.ReplaceAll(r.Context(), chi.URLParam(r, "cid"), lines)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, c)
}

// ClearCartHandler godoc
// @Summary Remove every line from a cart
// @Tags carts
// @Produce json
// @Param cid path string true "Cart ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/carts/{cid} [delete]
func (s *Server) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.Clear(r.Context(), chi.URLParam(r, "cid"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, c)
}
