package character

// Page is the paginated envelope returned by list operations
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Paginate wraps items with navigation metadata.
// limit must be positive; page is not clamped to the data.
func Paginate[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return Page[T]{
		Data:       items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
