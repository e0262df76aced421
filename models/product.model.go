package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductVariant is one color option of a product with its own image set.
type ProductVariant struct {
	Color  string   `bson:"color" json:"color"`
	Images []string `bson:"images" json:"images"`
}

// Product represents a product in the catalog. Created and edited by admin
// actions only; the storefront reads it.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"original_price,omitempty" json:"original_price,omitempty"`
	Category      string             `bson:"category" json:"category"`
	Brand         string             `bson:"brand" json:"brand"`
	Variants      []ProductVariant   `bson:"variants" json:"variants"`
	InStock       bool               `bson:"in_stock" json:"in_stock"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewCount   int                `bson:"review_count" json:"review_count"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// FirstImage returns the lead image for the given color, falling back to the
// first variant when the color is unknown.
func (p *Product) FirstImage(color string) string {
	for _, v := range p.Variants {
		if v.Color == color && len(v.Images) > 0 {
			return v.Images[0]
		}
	}
	if len(p.Variants) > 0 && len(p.Variants[0].Images) > 0 {
		return p.Variants[0].Images[0]
	}
	return ""
}
