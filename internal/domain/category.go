package domain

import "context"

// Category is a reference classification for events (careers, social, etc.).
// Free-text refinement lives on Event.Subcategory.
// swagger:model Category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository defines category storage.
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
}
