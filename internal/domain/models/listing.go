package models

import (
	"time"

	"agrisolve/internal/domain"
)

// Listing is a marketplace produce offer as stored in the listings table.
type Listing struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Unit        string               `json:"unit"`
	Quantity    string               `json:"quantity"`
	Category    string               `json:"category"`
	Location    string               `json:"location"`
	Images      []string             `json:"images"`
	SellerID    string               `json:"seller_id"`
	SellerName  string               `json:"seller_name"`
	SellerPhone string               `json:"seller_phone"`
	Status      domain.ListingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ListingPatch carries optional fields for a partial update. Nil means untouched.
type ListingPatch struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Price       *float64              `json:"price"`
	Unit        *string               `json:"unit"`
	Quantity    *string               `json:"quantity"`
	Category    *string               `json:"category"`
	Location    *string               `json:"location"`
	Images      *[]string             `json:"images"`
	SellerPhone *string               `json:"seller_phone"`
	Status      *domain.ListingStatus `json:"status"`
}

// Apply returns a copy of l with the patch fields set.
func (p ListingPatch) Apply(l Listing) Listing {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Unit != nil {
		l.Unit = *p.Unit
	}
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Images != nil {
		l.Images = append([]string(nil), (*p.Images)...)
	}
	if p.SellerPhone != nil {
		l.SellerPhone = *p.SellerPhone
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	return l
}
