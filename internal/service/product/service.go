package prodservice

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/form"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const maxDescriptionLen = 500

type ProductClient interface {
	Products(ctx context.Context) ([]model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
	CreateProduct(ctx context.Context, p model.Product) error
	UpdateProduct(ctx context.Context, id string, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	UploadImage(ctx context.Context, img model.ImageFile) (string, error)
	ImageURL(path string) string
}

type service struct {
	client ProductClient
	list   *listing.Controller[model.Product]
	form   *form.Controller[model.ProductInput]

	mu         sync.RWMutex
	categories []model.Category
}

func NewProductService(client ProductClient) *service {
	svc := &service{client: client}

	svc.list = listing.New(listing.Options[model.Product]{
		Name:  "products",
		Fetch: svc.fetch,
		Match: matchProduct,
	})

	svc.form = form.New(form.Options[model.ProductInput]{
		Name:     "product",
		Validate: svc.validate,
		Save:     svc.save,
		OnSaved:  svc.list.Fetch,
	})

	return svc
}

// fetch loads the products together with the categories the form resolves names against.
func (svc *service) fetch(ctx context.Context, _ url.Values) (model.Page[model.Product], error) {
	products, err := svc.client.Products(ctx)
	if err != nil {
		return model.Page[model.Product]{}, err
	}

	cats, err := svc.client.Categories(ctx)
	if err != nil {
		logger.Warn(ctx, "load categories for products", logger.ErrorF(err))
	} else {
		svc.mu.Lock()
		svc.categories = cats
		svc.mu.Unlock()
	}

	return model.Page[model.Product]{Items: products}, nil
}

func matchProduct(p model.Product, f model.Filter) bool {
	return listing.ContainsFold(f["search"], p.Name, p.Description) &&
		listing.Equal(f["category"], p.CategoryID) &&
		listing.InRange(p.Price, f["minPrice"], f["maxPrice"]) &&
		listing.InRange(decimal.NewFromInt(p.StockQuantity), f["minStock"], f["maxStock"])
}

func (svc *service) Refresh(ctx context.Context) error { return svc.list.Fetch(ctx) }

func (svc *service) SetFilter(ctx context.Context, patch model.Filter) error {
	return svc.list.SetFilter(ctx, patch)
}

func (svc *service) ResetFilters(ctx context.Context) error { return svc.list.Reset(ctx) }

// List returns the filtered products with image paths made absolute.
func (svc *service) List() listing.State[model.Product] {
	st := svc.list.State()
	st.Items = lo.Map(st.Items, func(p model.Product, _ int) model.Product {
		p.ImageURL = svc.client.ImageURL(p.ImageURL)
		return p
	})
	return st
}

func (svc *service) Categories() []model.Category {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	return append([]model.Category(nil), svc.categories...)
}

func (svc *service) OpenForm(_ context.Context, id string) (form.State[model.ProductInput], error) {
	const op = "prodservice.OpenForm"

	if id == "" {
		return svc.form.OpenCreate(), nil
	}

	p, ok := lo.Find(svc.list.Items(), func(p model.Product) bool { return p.ID == id })
	if !ok {
		return form.State[model.ProductInput]{}, fmt.Errorf("%s: product %s: %w", op, id, model.ErrNotFound)
	}

	return svc.form.OpenEdit(id, model.ProductInput{
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryName:  svc.categoryName(p.CategoryID),
		Description:   p.Description,
		ImageURL:      p.ImageURL,
	}), nil
}

func (svc *service) SubmitForm(ctx context.Context, in model.ProductInput) error {
	return svc.form.Submit(ctx, in)
}

func (svc *service) CancelForm() { svc.form.Cancel() }

func (svc *service) Form() form.State[model.ProductInput] { return svc.form.State() }

func (svc *service) Delete(ctx context.Context, id string) error {
	const op = "prodservice.Delete"

	if err := svc.client.DeleteProduct(ctx, id); err != nil {
		logger.Error(ctx, "delete product", logger.String("product_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return svc.list.Fetch(ctx)
}

func (svc *service) validate(_ form.Mode, in model.ProductInput) error {
	if in.Image != nil {
		if err := CheckImage(*in.Image); err != nil {
			return err
		}
	}

	v := model.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegativeDecimal("price", in.Price, v)
	validation.NonNegativeInt("stockQuantity", in.StockQuantity, v)
	validation.Required("category", in.CategoryName, v)
	if strings.TrimSpace(in.CategoryName) != "" {
		_, ok := svc.categoryID(in.CategoryName)
		validation.Check("category", ok, validation.CodeInvalid, v)
	}
	validation.Required("description", in.Description, v)
	validation.MaxLen("description", in.Description, maxDescriptionLen, v)

	return validation.Err(v)
}

// CheckImage accepts image MIME types strictly under the size limit.
func CheckImage(img model.ImageFile) error {
	if !strings.HasPrefix(img.ContentType, "image/") {
		return fmt.Errorf("%w: %w: %s", model.ErrValidation, model.ErrInvalidImage, img.ContentType)
	}
	if img.Size >= model.MaxImageSize {
		return fmt.Errorf("%w: %w: %s bytes", model.ErrValidation, model.ErrImageTooLarge,
			strconv.FormatInt(img.Size, 10))
	}
	return nil
}

// save uploads the image first. A failed upload aborts the save.
func (svc *service) save(ctx context.Context, mode form.Mode, id string, in model.ProductInput) error {
	log := logger.With(logger.String("product_id", id), logger.String("mode", string(mode)))

	imageURL := in.ImageURL
	if in.Image != nil {
		u, err := svc.client.UploadImage(ctx, *in.Image)
		if err != nil {
			log.Error(ctx, "upload product image", logger.ErrorF(err))
			return err
		}
		imageURL = u
	}

	catID, _ := svc.categoryID(in.CategoryName)
	p := model.Product{
		Name:          strings.TrimSpace(in.Name),
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryID:    catID,
		Description:   in.Description,
		ImageURL:      imageURL,
	}

	if mode == form.ModeEdit {
		return svc.client.UpdateProduct(ctx, id, p)
	}
	return svc.client.CreateProduct(ctx, p)
}

func (svc *service) categoryName(id string) string {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	c, _ := lo.Find(svc.categories, func(c model.Category) bool { return c.ID == id })
	return c.Name
}

func (svc *service) categoryID(name string) (string, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	name = strings.TrimSpace(name)
	c, ok := lo.Find(svc.categories, func(c model.Category) bool { return c.Name == name })
	return c.ID, ok
}
