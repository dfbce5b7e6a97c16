package backendclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/you-humble/colixy-dashboard/internal/client/converter"
	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

func (c *client) Categories(ctx context.Context) ([]model.Category, error) {
	var res dto.Envelope[[]dto.Category]
	err := c.doJSON(ctx, request{
		op:       "backend.Categories",
		fallback: "Error loading categories",
		method:   http.MethodGet,
		path:     "/categories",
	}, nil, &res)
	if err != nil {
		return nil, err
	}

	return converter.CategoriesToModel(res.Data), nil
}

func (c *client) CreateCategory(ctx context.Context, in model.CategoryInput) error {
	return c.doJSON(ctx, request{
		op:       "backend.CreateCategory",
		fallback: "Operation failed",
		method:   http.MethodPost,
		path:     "/categories",
	}, converter.CategoryInputToDTO(in), nil)
}

func (c *client) UpdateCategory(ctx context.Context, id string, in model.CategoryInput) error {
	return c.doJSON(ctx, request{
		op:       "backend.UpdateCategory",
		fallback: "Operation failed",
		method:   http.MethodPut,
		path:     pathID("/categories", id),
	}, converter.CategoryInputToDTO(in), nil)
}

func (c *client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op:       "backend.DeleteCategory",
		fallback: "Delete failed",
		method:   http.MethodDelete,
		path:     pathID("/categories", id),
	}, nil, nil)
}

func (c *client) Products(ctx context.Context) ([]model.Product, error) {
	var res dto.Envelope[[]dto.Product]
	err := c.doJSON(ctx, request{
		op:       "backend.Products",
		fallback: "Failed to load products",
		method:   http.MethodGet,
		path:     "/products",
	}, nil, &res)
	if err != nil {
		return nil, err
	}

	return converter.ProductsToModel(res.Data), nil
}

func (c *client) CreateProduct(ctx context.Context, p model.Product) error {
	return c.doJSON(ctx, request{
		op:       "backend.CreateProduct",
		fallback: "Creation failed",
		method:   http.MethodPost,
		path:     "/products",
	}, converter.ProductToDTO(p), nil)
}

func (c *client) UpdateProduct(ctx context.Context, id string, p model.Product) error {
	return c.doJSON(ctx, request{
		op:       "backend.UpdateProduct",
		fallback: "Update failed",
		method:   http.MethodPut,
		path:     pathID("/products", id),
	}, converter.ProductToDTO(p), nil)
}

func (c *client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op:       "backend.DeleteProduct",
		fallback: "Delete failed",
		method:   http.MethodDelete,
		path:     pathID("/products", id),
	}, nil, nil)
}

// UploadImage sends the file as multipart field "image" and returns the stored URL.
func (c *client) UploadImage(ctx context.Context, img model.ImageFile) (string, error) {
	const (
		op       = "backend.UploadImage"
		fallback = "Error uploading image"
	)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Name))
	h.Set("Content-Type", img.ContentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", &model.RequestError{Op: op, Message: fallback, Cause: err}
	}
	if img.Body != nil {
		if _, err := io.Copy(part, img.Body); err != nil {
			return "", &model.RequestError{Op: op, Message: fallback, Cause: err}
		}
	}
	if err := mw.Close(); err != nil {
		return "", &model.RequestError{Op: op, Message: fallback, Cause: err}
	}

	var res dto.UploadResult
	err = c.do(ctx, request{
		op:          op,
		fallback:    fallback,
		method:      http.MethodPost,
		path:        "/upload",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, &res)
	if err != nil {
		return "", err
	}

	u := res.URL
	if u == "" && res.Data != nil {
		u = res.Data.URL
	}
	if u == "" {
		return "", &model.RequestError{Op: op, Message: fallback}
	}
	return u, nil
}

func (c *client) Transactions(ctx context.Context, query url.Values) ([]model.StockTransaction, error) {
	var res dto.Envelope[[]dto.Transaction]
	err := c.doJSON(ctx, request{
		op:       "backend.Transactions",
		fallback: "Failed to load transactions",
		method:   http.MethodGet,
		path:     "/transactions",
		query:    query,
	}, nil, &res)
	if err != nil {
		return nil, err
	}

	return converter.TransactionsToModel(res.Data), nil
}

func (c *client) CreateTransaction(ctx context.Context, in model.TransactionInput) error {
	return c.doJSON(ctx, request{
		op:       "backend.CreateTransaction",
		fallback: "Creation failed",
		method:   http.MethodPost,
		path:     "/transactions",
	}, converter.TransactionInputToDTO(in), nil)
}

func (c *client) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) error {
	return c.doJSON(ctx, request{
		op:       "backend.UpdateTransaction",
		fallback: "Update failed",
		method:   http.MethodPut,
		path:     pathID("/transactions", id),
	}, converter.TransactionInputToDTO(in), nil)
}

func (c *client) DeleteTransaction(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op:       "backend.DeleteTransaction",
		fallback: "Delete failed",
		method:   http.MethodDelete,
		path:     pathID("/transactions", id),
	}, nil, nil)
}

func (c *client) TransactionStats(ctx context.Context, query url.Values) (model.TransactionStats, error) {
	var res dto.Envelope[dto.TransactionStats]
	err := c.doJSON(ctx, request{
		op:       "backend.TransactionStats",
		fallback: "Failed to load statistics",
		method:   http.MethodGet,
		path:     "/transactions/stats",
		query:    query,
	}, nil, &res)
	if err != nil {
		return model.TransactionStats{}, err
	}

	return converter.TransactionStatsToModel(res.Data), nil
}
