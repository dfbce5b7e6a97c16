package backendclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/you-humble/colixy-dashboard/internal/client/converter"
	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

// Login establishes the backend session. The session cookie lands in the client's jar.
func (c *client) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	var res dto.Envelope[*dto.User]
	err := c.doJSON(ctx, request{
		op:       "backend.Login",
		fallback: "Login failed",
		method:   http.MethodPost,
		path:     "/admin/login",
	}, dto.Login{Email: creds.Email, Password: creds.Password}, &res)
	if err != nil {
		return nil, err
	}

	return userOrNil(res.Data), nil
}

func (c *client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, request{
		op:       "backend.Logout",
		fallback: "Logout failed",
		method:   http.MethodPost,
		path:     "/admin/logout",
	}, nil, nil)
}

func (c *client) Verify(ctx context.Context) (*model.User, error) {
	var res dto.Envelope[*dto.User]
	err := c.doJSON(ctx, request{
		op:       "backend.Verify",
		fallback: "Authentication verification failed",
		method:   http.MethodGet,
		path:     "/admin/verify",
	}, nil, &res)
	if err != nil {
		return nil, err
	}

	return userOrNil(res.Data), nil
}

func (c *client) Profile(ctx context.Context) (*model.User, error) {
	var res dto.Envelope[*dto.User]
	err := c.doJSON(ctx, request{
		op:       "backend.Profile",
		fallback: "Failed to get profile",
		method:   http.MethodGet,
		path:     "/admin/profile",
	}, nil, &res)
	if err != nil {
		return nil, err
	}

	return userOrNil(res.Data), nil
}

func (c *client) UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.User, error) {
	var res dto.Envelope[*dto.User]
	err := c.doJSON(ctx, request{
		op:       "backend.UpdateProfile",
		fallback: "Failed to update profile",
		method:   http.MethodPut,
		path:     "/admin/profile",
	}, converter.ProfileToDTO(in), &res)
	if err != nil {
		return nil, err
	}

	return userOrNil(res.Data), nil
}

func (c *client) ChangePassword(ctx context.Context, in model.PasswordChange) error {
	return c.doJSON(ctx, request{
		op:       "backend.ChangePassword",
		fallback: "Failed to change password",
		method:   http.MethodPut,
		path:     "/admin/change-password",
	}, dto.PasswordChange{CurrentPassword: in.CurrentPassword, NewPassword: in.NewPassword}, nil)
}

func (c *client) Users(ctx context.Context, query url.Values) (model.Page[model.User], error) {
	var res dto.Envelope[[]dto.User]
	err := c.doJSON(ctx, request{
		op:       "backend.Users",
		fallback: "Failed to fetch users",
		method:   http.MethodGet,
		path:     "/admin/all",
		query:    query,
	}, nil, &res)
	if err != nil {
		return model.Page[model.User]{}, err
	}

	return model.Page[model.User]{
		Items:    converter.UsersToModel(res.Data),
		Page:     res.Page,
		PageSize: res.PageSize,
		Total:    res.Total,
	}, nil
}

func (c *client) User(ctx context.Context, id string) (*model.User, error) {
	const op = "backend.User"

	var res dto.Envelope[*dto.User]
	err := c.doJSON(ctx, request{
		op:       op,
		fallback: "Failed to fetch user",
		method:   http.MethodGet,
		path:     pathID("/admin", id),
	}, nil, &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, &model.RequestError{Op: op, Status: http.StatusNotFound, Message: "User not found"}
	}

	return userOrNil(res.Data), nil
}

func (c *client) RegisterUser(ctx context.Context, in model.UserInput) error {
	return c.doJSON(ctx, request{
		op:       "backend.RegisterUser",
		fallback: "Failed to create user",
		method:   http.MethodPost,
		path:     "/admin/register",
	}, converter.UserInputToDTO(in), nil)
}

func (c *client) UpdateUser(ctx context.Context, id string, in model.UserInput) error {
	return c.doJSON(ctx, request{
		op:       "backend.UpdateUser",
		fallback: "Failed to update user",
		method:   http.MethodPut,
		path:     pathID("/admin", id),
	}, converter.UserInputToDTO(in), nil)
}

func (c *client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op:       "backend.DeleteUser",
		fallback: "Failed to delete user",
		method:   http.MethodDelete,
		path:     pathID("/admin", id),
	}, nil, nil)
}

func userOrNil(u *dto.User) *model.User {
	if u == nil {
		return nil
	}
	m := converter.UserToModel(*u)
	return &m
}
