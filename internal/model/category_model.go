package model

// Category is the wire shape returned by the knowledge-base API. The full
// set fits in memory; no pagination is handled.
type Category struct {
	Id          int       `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Services    []Service `json:"services"`
}

type Service struct {
	Title string `json:"title"`
}
