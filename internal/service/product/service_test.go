package prodservice

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/mocks"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

var (
	categories = []model.Category{
		{ID: "c1", Name: "Electronics"},
		{ID: "c2", Name: "Books"},
	}
	products = []model.Product{
		{ID: "p1", Name: "Phone", Price: decimal.NewFromInt(300), StockQuantity: 5, CategoryID: "c1", Description: "Smart phone", ImageURL: "/uploads/p1.png"},
		{ID: "p2", Name: "Novel", Price: decimal.NewFromInt(12), StockQuantity: 0, CategoryID: "c2", Description: "Paperback"},
	}
)

func loaded(t *testing.T) (*service, *mocks.MockProductClient) {
	t.Helper()

	client := mocks.NewMockProductClient(t)
	client.On("Products", mock.Anything).Return(products, nil).Once()
	client.On("Categories", mock.Anything).Return(categories, nil).Once()

	svc := NewProductService(client)
	require.NoError(t, svc.Refresh(context.Background()))
	return svc, client
}

func validInput() model.ProductInput {
	return model.ProductInput{
		Name:          "Tablet",
		Price:         decimal.RequireFromString("199.99"),
		StockQuantity: 3,
		CategoryName:  "Electronics",
		Description:   "10 inch",
	}
}

func TestSubmitRejectsBadImagesBeforeUpload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		image  model.ImageFile
		target error
	}{
		{
			name:   "6MB image",
			image:  model.ImageFile{Name: "big.png", ContentType: "image/png", Size: 6 * 1024 * 1024},
			target: model.ErrImageTooLarge,
		},
		{
			name:   "exactly 5MB image",
			image:  model.ImageFile{Name: "edge.jpg", ContentType: "image/jpeg", Size: model.MaxImageSize},
			target: model.ErrImageTooLarge,
		},
		{
			name:   "small pdf",
			image:  model.ImageFile{Name: "doc.pdf", ContentType: "application/pdf", Size: 10},
			target: model.ErrInvalidImage,
		},
		{
			name:   "huge pdf",
			image:  model.ImageFile{Name: "doc.pdf", ContentType: "application/pdf", Size: 60 * 1024 * 1024},
			target: model.ErrInvalidImage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, client := loaded(t)
			svc.OpenForm(context.Background(), "")

			in := validInput()
			img := tc.image
			in.Image = &img

			err := svc.SubmitForm(context.Background(), in)
			assert.ErrorIs(t, err, tc.target)
			assert.ErrorIs(t, err, model.ErrValidation)
			client.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
			client.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
			assert.True(t, svc.Form().Open)
		})
	}
}

func TestSubmitUploadFailureAbortsSave(t *testing.T) {
	t.Parallel()

	svc, client := loaded(t)
	ctx := context.Background()
	svc.OpenForm(ctx, "")

	in := validInput()
	in.Image = &model.ImageFile{Name: "a.png", ContentType: "image/png", Size: 1024, Body: strings.NewReader("png")}

	client.On("UploadImage", mock.Anything, mock.Anything).
		Return("", &model.RequestError{Op: "x", Message: "Error uploading image"}).Once()

	err := svc.SubmitForm(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "Error uploading image", model.UserMessage(err))
	client.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	assert.True(t, svc.Form().Open)
	assert.Equal(t, "Tablet", svc.Form().Values.Name)
}

func TestSubmitUploadsThenCreates(t *testing.T) {
	t.Parallel()

	svc, client := loaded(t)
	ctx := context.Background()
	svc.OpenForm(ctx, "")

	in := validInput()
	in.Image = &model.ImageFile{Name: "a.png", ContentType: "image/png", Size: 1024, Body: strings.NewReader("png")}

	client.On("UploadImage", mock.Anything, mock.Anything).Return("/uploads/a.png", nil).Once()
	client.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == "c1" && p.ImageURL == "/uploads/a.png" && p.Price.Equal(decimal.RequireFromString("199.99"))
	})).Return(nil).Once()
	client.On("Products", mock.Anything).Return(products, nil).Once()
	client.On("Categories", mock.Anything).Return(categories, nil).Once()

	require.NoError(t, svc.SubmitForm(ctx, in))
	assert.False(t, svc.Form().Open)
}

func TestOpenEditResolvesCategoryName(t *testing.T) {
	t.Parallel()

	svc, client := loaded(t)
	ctx := context.Background()

	st, err := svc.OpenForm(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Books", st.Values.CategoryName)

	in := st.Values
	in.CategoryName = "Electronics"
	in.StockQuantity = 7

	client.On("UpdateProduct", mock.Anything, "p2", mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == "c1" && p.StockQuantity == 7 && p.ImageURL == ""
	})).Return(nil).Once()
	client.On("Products", mock.Anything).Return(products, nil).Once()
	client.On("Categories", mock.Anything).Return(categories, nil).Once()

	require.NoError(t, svc.SubmitForm(ctx, in))
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	svc, _ := loaded(t)
	svc.OpenForm(context.Background(), "")

	in := validInput()
	in.Name = ""
	in.Price = decimal.NewFromInt(-1)
	in.StockQuantity = -2
	in.CategoryName = "Unknown"
	in.Description = strings.Repeat("x", 501)

	err := svc.SubmitForm(context.Background(), in)
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, model.Violations{
		"name":          "required",
		"price":         "must_not_be_negative",
		"stockQuantity": "must_not_be_negative",
		"category":      "invalid",
		"description":   "too_long",
	}, vErr.Violations)
}

func TestListFiltersLocallyAndResolvesImages(t *testing.T) {
	t.Parallel()

	svc, client := loaded(t)
	client.On("ImageURL", "/uploads/p1.png").Return("https://img.example.com/uploads/p1.png")
	client.On("ImageURL", "").Return("")

	ctx := context.Background()
	require.NoError(t, svc.SetFilter(ctx, model.Filter{"category": "c1", "minStock": "1"}))

	items := svc.List().Items
	require.Len(t, items, 1)
	assert.Equal(t, "https://img.example.com/uploads/p1.png", items[0].ImageURL)

	require.NoError(t, svc.SetFilter(ctx, model.Filter{"category": "", "minStock": "", "maxPrice": "50"}))
	items = svc.List().Items
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}
