package model

type Category struct {
	ID          string
	Name        string
	Description string
}

// CategoryInput is the editable part of a category.
type CategoryInput struct {
	Name        string
	Description string
}
