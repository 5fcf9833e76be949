package product

import "time"

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"imageUrl"`
	CategoryID  *int      `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateParams struct {
	Name        string
	Price       float64
	Description *string
	Stock       int
	ImageURL    *string
	CategoryID  *int
}

// UpdateParams lists the fields a partial update may touch; nil means
// leave the column alone.
type UpdateParams struct {
	ID          int
	Name        *string
	Price       *float64
	Description *string
	Stock       *int
	ImageURL    *string
	CategoryID  *int
}

// ListFilter is conjunctive: each supplied predicate narrows the result.
type ListFilter struct {
	Search     *string
	CategoryID *int
}
