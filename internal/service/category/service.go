package catservice

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/form"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 200
)

type CategoryClient interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, in model.CategoryInput) error
	UpdateCategory(ctx context.Context, id string, in model.CategoryInput) error
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	client CategoryClient
	list   *listing.Controller[model.Category]
	form   *form.Controller[model.CategoryInput]
}

func NewCategoryService(client CategoryClient) *service {
	svc := &service{client: client}

	svc.list = listing.New(listing.Options[model.Category]{
		Name: "categories",
		Fetch: func(ctx context.Context, _ url.Values) (model.Page[model.Category], error) {
			cats, err := client.Categories(ctx)
			return model.Page[model.Category]{Items: cats}, err
		},
		Match: func(c model.Category, f model.Filter) bool {
			return listing.ContainsFold(f["search"], c.Name, c.Description)
		},
	})

	svc.form = form.New(form.Options[model.CategoryInput]{
		Name:     "category",
		Validate: svc.validate,
		Save: func(ctx context.Context, mode form.Mode, id string, in model.CategoryInput) error {
			in.Name = strings.TrimSpace(in.Name)
			if mode == form.ModeEdit {
				return client.UpdateCategory(ctx, id, in)
			}
			return client.CreateCategory(ctx, in)
		},
		OnSaved: svc.list.Fetch,
	})

	return svc
}

func (svc *service) Refresh(ctx context.Context) error { return svc.list.Fetch(ctx) }

func (svc *service) SetFilter(ctx context.Context, patch model.Filter) error {
	return svc.list.SetFilter(ctx, patch)
}

func (svc *service) ResetFilters(ctx context.Context) error { return svc.list.Reset(ctx) }

func (svc *service) List() listing.State[model.Category] { return svc.list.State() }

// OpenForm opens a create form for an empty id, otherwise an edit form seeded
// from the listed category.
func (svc *service) OpenForm(_ context.Context, id string) (form.State[model.CategoryInput], error) {
	const op = "catservice.OpenForm"

	if id == "" {
		return svc.form.OpenCreate(), nil
	}

	cat, ok := lo.Find(svc.list.Items(), func(c model.Category) bool { return c.ID == id })
	if !ok {
		return form.State[model.CategoryInput]{}, fmt.Errorf("%s: category %s: %w", op, id, model.ErrNotFound)
	}

	return svc.form.OpenEdit(id, model.CategoryInput{
		Name:        cat.Name,
		Description: cat.Description,
	}), nil
}

func (svc *service) SubmitForm(ctx context.Context, in model.CategoryInput) error {
	return svc.form.Submit(ctx, in)
}

func (svc *service) CancelForm() { svc.form.Cancel() }

func (svc *service) Form() form.State[model.CategoryInput] { return svc.form.State() }

func (svc *service) Delete(ctx context.Context, id string) error {
	const op = "catservice.Delete"

	if err := svc.client.DeleteCategory(ctx, id); err != nil {
		logger.Error(ctx, "delete category", logger.String("category_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return svc.list.Fetch(ctx)
}

func (svc *service) validate(mode form.Mode, in model.CategoryInput) error {
	v := model.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, maxNameLen, v)
	validation.MaxLen("description", in.Description, maxDescriptionLen, v)

	editing := ""
	if mode == form.ModeEdit {
		editing = svc.form.State().ID
	}
	name := strings.TrimSpace(in.Name)
	taken := lo.ContainsBy(svc.list.Items(), func(c model.Category) bool {
		return c.ID != editing && strings.EqualFold(strings.TrimSpace(c.Name), name)
	})
	validation.Check("name", !taken, validation.CodeDuplicate, v)

	return validation.Err(v)
}
