package domain

// Category classifies tickets. Categories relate to departments through a
// many-to-many association managed by the category repository.
type Category struct {
	ID   string
	Name string
}
