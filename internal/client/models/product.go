package models

// Product is a single element of the remote paged product list.
// The provider guarantees no total count; the end of the list is inferred
// from a short page.
type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}
