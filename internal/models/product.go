package models

import "time"

// Product represents a catalog product with its owned images.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string         `json:"title" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Description string         `json:"description" validate:"omitempty,max=500"`
	Price       float64        `json:"price" validate:"gte=0"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Images      []ProductImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProductImage is an owned child row of Product. It is never created or
// removed on its own, only through its parent's create/update/delete.
// The integer key preserves insertion order.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	URL       string `json:"url" gorm:"type:varchar(500)"`
	ProductID string `json:"-" gorm:"type:varchar(36);index"`
}

// PlainProduct is the outward projection of a product: images are
// flattened to an ordered list of URL strings, never nested records.
type PlainProduct struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Plain flattens the product's image records into URL strings.
func (p *Product) Plain() PlainProduct {
	urls := make([]string, 0, len(p.Images))
	for _, image := range p.Images {
		urls = append(urls, image.URL)
	}
	return PlainProduct{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      urls,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
