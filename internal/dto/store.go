package dto

// CreateStore is the validated payload for creating a store.
type CreateStore struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=3,max=500"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
}

// UpdateStore is a partial update: nil fields are left untouched.
type UpdateStore struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,min=3,max=500"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
}
