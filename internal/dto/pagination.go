package dto

// Pagination carries the page window for list operations.
type Pagination struct {
	Limit  int `json:"limit" query:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int `json:"offset" query:"offset" validate:"omitempty,gte=0"`
}

const defaultLimit = 10

// Window returns the effective limit and offset, applying defaults.
func (p Pagination) Window() (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset = p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
