package model

import (
	"io"

	"github.com/shopspring/decimal"
)

const MaxImageSize = 5 * 1024 * 1024

type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	StockQuantity int64
	CategoryID    string
	Description   string
	ImageURL      string
}

// ProductInput is the product form. CategoryName is what the operator picks;
// it is resolved to a category id on submit.
type ProductInput struct {
	Name          string
	Price         decimal.Decimal
	StockQuantity int64
	CategoryName  string
	Description   string
	ImageURL      string
	Image         *ImageFile
}

// ImageFile is a locally selected file waiting to be uploaded.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}
