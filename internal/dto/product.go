package dto

// CreateProduct is the validated payload for creating a product.
// Images are plain URL strings; the service turns them into child rows.
type CreateProduct struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Slug        string   `json:"slug" validate:"omitempty,max=120"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProduct is a partial update: nil fields are left untouched.
// Images is a pointer to a slice so that a present-but-empty list
// (replace with nothing) is distinguishable from an absent field
// (leave images alone).
type UpdateProduct struct {
	Title       *string   `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
	Slug        *string   `json:"slug" validate:"omitempty,max=120"`
	Images      *[]string `json:"images" validate:"omitempty,dive,required"`
}
