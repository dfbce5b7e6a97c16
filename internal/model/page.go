package model

// Page is one fetched list. Pagination fields are zero when the backend omits them.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int
}
