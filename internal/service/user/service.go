package userservice

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/form"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const (
	FilterPage     = "page"
	FilterPageSize = "pageSize"
	FilterSearch   = "search"

	defaultPageSize = 10
	minNameLen      = 2
	minPasswordLen  = 6
)

type UserClient interface {
	Users(ctx context.Context, query url.Values) (model.Page[model.User], error)
	User(ctx context.Context, id string) (*model.User, error)
	RegisterUser(ctx context.Context, in model.UserInput) error
	UpdateUser(ctx context.Context, id string, in model.UserInput) error
	DeleteUser(ctx context.Context, id string) error
}

type service struct {
	client UserClient
	list   *listing.Controller[model.User]
	form   *form.Controller[model.UserInput]
}

func NewUserService(client UserClient) *service {
	svc := &service{client: client}

	svc.list = listing.New(listing.Options[model.User]{
		Name: "users",
		Defaults: model.Filter{
			FilterPage:     "1",
			FilterPageSize: strconv.Itoa(defaultPageSize),
		},
		Fetch: client.Users,
	})

	svc.form = form.New(form.Options[model.UserInput]{
		Name:     "user",
		Defaults: func() model.UserInput { return model.UserInput{Role: model.RoleAdmin} },
		Validate: validate,
		Save: func(ctx context.Context, mode form.Mode, id string, in model.UserInput) error {
			if in.Role == "" {
				in.Role = model.RoleAdmin
			}
			if mode == form.ModeEdit {
				return client.UpdateUser(ctx, id, in)
			}
			return client.RegisterUser(ctx, in)
		},
		OnSaved: svc.list.Fetch,
	})

	return svc
}

func (svc *service) Refresh(ctx context.Context) error { return svc.list.Fetch(ctx) }

// SetFilter goes back to the first page whenever the search changes.
func (svc *service) SetFilter(ctx context.Context, patch model.Filter) error {
	_, searching := patch[FilterSearch]
	_, paging := patch[FilterPage]
	if searching && !paging {
		patch = patch.Merge(model.Filter{FilterPage: "1"})
	}
	return svc.list.SetFilter(ctx, patch)
}

func (svc *service) ResetFilters(ctx context.Context) error { return svc.list.Reset(ctx) }

func (svc *service) List() listing.State[model.User] { return svc.list.State() }

func (svc *service) User(ctx context.Context, id string) (*model.User, error) {
	const op = "userservice.User"

	u, err := svc.client.User(ctx, id)
	if err != nil {
		logger.Error(ctx, "fetch user", logger.String("user_id", id), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// OpenForm seeds an edit form from the current page, or from the backend when
// the user is not on it.
func (svc *service) OpenForm(ctx context.Context, id string) (form.State[model.UserInput], error) {
	if id == "" {
		return svc.form.OpenCreate(), nil
	}

	u, ok := lo.Find(svc.list.Items(), func(u model.User) bool { return u.ID == id })
	if !ok {
		found, err := svc.User(ctx, id)
		if err != nil {
			return form.State[model.UserInput]{}, err
		}
		u = *found
	}

	return svc.form.OpenEdit(id, model.UserInput{
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}), nil
}

func (svc *service) SubmitForm(ctx context.Context, in model.UserInput) error {
	return svc.form.Submit(ctx, in)
}

func (svc *service) CancelForm() { svc.form.Cancel() }

func (svc *service) Form() form.State[model.UserInput] { return svc.form.State() }

func (svc *service) Delete(ctx context.Context, id string) error {
	const op = "userservice.Delete"

	if err := svc.client.DeleteUser(ctx, id); err != nil {
		logger.Error(ctx, "delete user", logger.String("user_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return svc.list.Fetch(ctx)
}

// validate requires a password on create only. On edit a blank password keeps the current one.
func validate(mode form.Mode, in model.UserInput) error {
	v := model.Violations{}
	validation.Required("name", in.Name, v)
	validation.MinLen("name", in.Name, minNameLen, v)
	validation.Required("email", in.Email, v)
	validation.Email("email", in.Email, v)
	validation.Phone("phone", in.Phone, v)
	if in.Role != "" {
		validation.Check("role", in.Role.Valid(), validation.CodeInvalid, v)
	}

	if mode == form.ModeCreate {
		validation.Required("password", in.Password, v)
	}
	if in.Password != "" {
		validation.MinLen("password", in.Password, minPasswordLen, v)
		validation.Check("confirmPassword", in.Password == in.ConfirmPassword, validation.CodeMismatch, v)
	}

	return validation.Err(v)
}
