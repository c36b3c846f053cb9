package entity

// Category is a knowledge-base grouping of related services. The full set is
// fetched from the remote knowledge-base API at session start and treated as
// read-only for the lifetime of the session.
type Category struct {
	Id          int
	Slug        string
	Name        string
	Description string
	Services    []Service
}

// Service belongs to exactly one Category.
type Service struct {
	Title string
}
