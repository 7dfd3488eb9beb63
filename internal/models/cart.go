package models

import "time"

type Cart struct {
	ID        string     `json:"id" bson:"_id"`
	Items     []CartItem `json:"products" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// CartItem is one line of a cart. Product holds the populated snapshot and is
// nil when details were not requested or the product no longer exists.
type CartItem struct {
	ProductID string   `json:"product_id" bson:"product_id"`
	Quantity  int      `json:"quantity" bson:"quantity"`
	Product   *Product `json:"product" bson:"-"`
}

// CloneItems returns a copy of the cart lines without their populated products.
func (c Cart) CloneItems() []CartItem {
	items := make([]CartItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return items
}
