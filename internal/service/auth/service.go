package authservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

// Where the operator lands after each outcome of the gate.
const (
	HomePath  = "/dashboard/performance"
	LoginPath = "/login"

	minPasswordLen = 6
)

type AuthClient interface {
	Login(ctx context.Context, creds model.Credentials) (*model.User, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (*model.User, error)
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.User, error)
	ChangePassword(ctx context.Context, in model.PasswordChange) error
}

type service struct {
	client AuthClient

	mu      sync.RWMutex
	current *model.User
}

func NewAuthService(client AuthClient) *service {
	return &service{client: client}
}

func (svc *service) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	const op = "authservice.Login"

	v := model.Violations{}
	validation.Required("email", creds.Email, v)
	validation.Required("password", creds.Password, v)
	if err := validation.Err(v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := logger.With(logger.String("email", creds.Email))

	u, err := svc.client.Login(ctx, creds)
	if err != nil {
		log.Warn(ctx, "login rejected", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u == nil {
		// Some backends only set the cookie; ask who we are.
		if u, err = svc.client.Verify(ctx); err != nil {
			log.Error(ctx, "verify after login", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	svc.setCurrent(u)
	log.Info(ctx, "operator logged in")
	return u, nil
}

// Logout always forgets the local session, even when the backend call fails.
func (svc *service) Logout(ctx context.Context) error {
	const op = "authservice.Logout"

	err := svc.client.Logout(ctx)
	svc.setCurrent(nil)
	if err != nil {
		logger.Warn(ctx, "logout", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Current returns the authenticated operator, checking with the backend when
// nothing is cached. It is the gate in front of every protected view.
func (svc *service) Current(ctx context.Context) (*model.User, error) {
	const op = "authservice.Current"

	svc.mu.RLock()
	u := svc.current
	svc.mu.RUnlock()
	if u != nil {
		return u, nil
	}

	u, err := svc.client.Verify(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrUnauthorized) {
			logger.Error(ctx, "verify session", logger.ErrorF(err))
		}
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrUnauthorized, err)
	}
	if u == nil {
		u = &model.User{}
	}

	svc.setCurrent(u)
	return u, nil
}

func (svc *service) Profile(ctx context.Context) (*model.User, error) {
	const op = "authservice.Profile"

	u, err := svc.client.Profile(ctx)
	if err != nil {
		logger.Error(ctx, "get profile", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u != nil {
		svc.setCurrent(u)
	}
	return u, nil
}

func (svc *service) UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.User, error) {
	const op = "authservice.UpdateProfile"

	v := model.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("email", in.Email, v)
	validation.Email("email", in.Email, v)
	validation.Phone("phone", in.Phone, v)
	if err := validation.Err(v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u, err := svc.client.UpdateProfile(ctx, in)
	if err != nil {
		logger.Error(ctx, "update profile", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u != nil {
		svc.setCurrent(u)
	}
	return u, nil
}

func (svc *service) ChangePassword(ctx context.Context, in model.PasswordChange) error {
	const op = "authservice.ChangePassword"

	v := model.Violations{}
	validation.Required("currentPassword", in.CurrentPassword, v)
	validation.Required("newPassword", in.NewPassword, v)
	validation.MinLen("newPassword", in.NewPassword, minPasswordLen, v)
	if err := validation.Err(v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := svc.client.ChangePassword(ctx, in); err != nil {
		logger.Error(ctx, "change password", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (svc *service) setCurrent(u *model.User) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.current = u
}
