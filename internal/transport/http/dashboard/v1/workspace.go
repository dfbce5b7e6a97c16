package http

import (
	"context"
	"time"

	"github.com/you-humble/colixy-dashboard/internal/model"
	colisservice "github.com/you-humble/colixy-dashboard/internal/service/colis"
	"github.com/you-humble/colixy-dashboard/internal/service/form"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
)

// EntityService is one list page with its create/edit form.
type EntityService[T, V any] interface {
	Refresh(ctx context.Context) error
	SetFilter(ctx context.Context, patch model.Filter) error
	ResetFilters(ctx context.Context) error
	List() listing.State[T]
	OpenForm(ctx context.Context, id string) (form.State[V], error)
	SubmitForm(ctx context.Context, in V) error
	CancelForm()
	Form() form.State[V]
	Delete(ctx context.Context, id string) error
}

type CategoryService = EntityService[model.Category, model.CategoryInput]

type ProductService interface {
	EntityService[model.Product, model.ProductInput]
	Categories() []model.Category
}

type TransactionService interface {
	EntityService[model.StockTransaction, model.TransactionInput]
	Stats() model.TransactionStats
}

type UserService interface {
	EntityService[model.User, model.UserInput]
	User(ctx context.Context, id string) (*model.User, error)
}

type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*model.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*model.User, error)
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, in model.ProfileInput) (*model.User, error)
	ChangePassword(ctx context.Context, in model.PasswordChange) error
}

type ParcelService interface {
	Workflow() *colisservice.Workflow
	Refresh(ctx context.Context) error
	SetFilter(ctx context.Context, patch model.Filter) error
	SetDateRange(ctx context.Context, from, to time.Time) error
	ResetFilters(ctx context.Context) error
	List() listing.State[model.Parcel]
	Stats(ctx context.Context) (model.ParcelStats, error)
	Delete(ctx context.Context, id string) error
	RefreshPending(ctx context.Context) error
	Close()
}

type ReturnService interface {
	Entry() *colisservice.BarcodeEntry
	Refresh(ctx context.Context) error
	SetFilter(ctx context.Context, patch model.Filter) error
	ResetFilters(ctx context.Context) error
	List() listing.State[model.Parcel]
	OpenMark()
	CancelMark()
	MarkReturned(ctx context.Context, barcode string) (*model.Parcel, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (model.ParcelStats, error)
	Close()
}

// Workspace is everything one operator has open: a page context per entity
// and the parcel workflows. Workspaces never share state.
type Workspace struct {
	Auth         AuthService
	Categories   CategoryService
	Products     ProductService
	Transactions TransactionService
	Users        UserService
	Parcels      ParcelService
	Returns      ReturnService
}

// Close stops any running barcode scan.
func (ws *Workspace) Close() {
	if ws.Parcels != nil {
		ws.Parcels.Close()
	}
	if ws.Returns != nil {
		ws.Returns.Close()
	}
}
