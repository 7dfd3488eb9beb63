package models

import "time"

// Product is a catalog record. Code is the business key and never changes
// after creation.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Code        string    `json:"code" bson:"code"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Category    string    `json:"category" bson:"category"`
	Status      bool      `json:"status" bson:"status"`
	Thumbnails  []string  `json:"thumbnails" bson:"thumbnails"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
