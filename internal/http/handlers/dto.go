package handlers

import (
	"github.com/rogerio-castellano/storefront-api/internal/auth"
	"github.com/rogerio-castellano/storefront-api/internal/catalog"
	"github.com/rogerio-castellano/storefront-api/internal/models"
)

// ProductRequest is the body of a product creation. It shares its fields
// and rules with the websocket addProduct command.
type ProductRequest catalog.ProductInput

func (r ProductRequest) toModel() models.Product {
	return catalog.ProductInput(r).Product()
}

// ProductUpdateRequest is a partial update; absent fields are left alone.
// The code and id of a product cannot be changed.
type ProductUpdateRequest struct {
	ID          *string   `json:"id"`
	Code        *string   `json:"code"`
	Title       *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string   `json:"description" validate:"omitnil,min=1,max=2000"`
	Price       *float64  `json:"price" validate:"omitnil,gte=0"`
	Stock       *int      `json:"stock" validate:"omitnil,gte=0"`
	Category    *string   `json:"category" validate:"omitnil,min=1,max=100"`
	Status      *bool     `json:"status"`
	Thumbnails  *[]string `json:"thumbnails"`
}

func (r ProductUpdateRequest) toPatch() catalog.ProductPatch {
	patch := catalog.ProductPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		Status:      r.Status,
	}
	if r.Thumbnails != nil {
		patch.Thumbnails = *r.Thumbnails
		if patch.Thumbnails == nil {
			patch.Thumbnails = []string{}
		}
	}
	return patch
}

// ProductsPage mirrors the paginated listing: the page items under payload
// and the pagination fields next to it.
type ProductsPage struct {
	Status      string           `json:"status"`
	Payload     []models.Product `json:"payload"`
	TotalDocs   int              `json:"totalDocs"`
	Limit       int              `json:"limit"`
	TotalPages  int              `json:"totalPages"`
	Page        int              `json:"page"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
	PrevPage    *int             `json:"prevPage"`
	NextPage    *int             `json:"nextPage"`
	PrevLink    *string          `json:"prevLink"`
	NextLink    *string          `json:"nextLink"`
}

func newProductsPage(res catalog.PagedResult) ProductsPage {
	return ProductsPage{
		Status:      statusSuccess,
		Payload:     res.Items,
		TotalDocs:   res.TotalDocs,
		Limit:       res.Limit,
		TotalPages:  res.TotalPages,
		Page:        res.Page,
		HasPrevPage: res.HasPrevPage,
		HasNextPage: res.HasNextPage,
		PrevPage:    res.PrevPage,
		NextPage:    res.NextPage,
		PrevLink:    res.PrevLink,
		NextLink:    res.NextLink,
	}
}

type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=1"`
}

type CartLineRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type ReplaceCartRequest struct {
	Products []CartLineRequest `json:"products" validate:"required,dive"`
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SessionResult struct {
	User   UserResponse `json:"user"`
	Tokens auth.Tokens  `json:"tokens"`
}
