package txservice

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/samber/lo"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/form"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

// Filter keys understood by GET /transactions.
const (
	FilterType      = "type"
	FilterProduct   = "product"
	FilterStartDate = "startDate"
	FilterEndDate   = "endDate"
)

var wireTypes = map[string]string{
	string(model.TransactionIn):  "entree",
	string(model.TransactionOut): "sortie",
}

type TransactionClient interface {
	Transactions(ctx context.Context, query url.Values) ([]model.StockTransaction, error)
	CreateTransaction(ctx context.Context, in model.TransactionInput) error
	UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) error
	DeleteTransaction(ctx context.Context, id string) error
	TransactionStats(ctx context.Context, query url.Values) (model.TransactionStats, error)
}

type service struct {
	client TransactionClient
	list   *listing.Controller[model.StockTransaction]
	form   *form.Controller[model.TransactionInput]

	mu    sync.RWMutex
	stats model.TransactionStats
}

func NewTransactionService(client TransactionClient) *service {
	svc := &service{client: client}

	svc.list = listing.New(listing.Options[model.StockTransaction]{
		Name: "transactions",
		Fetch: func(ctx context.Context, q url.Values) (model.Page[model.StockTransaction], error) {
			if wire, ok := wireTypes[q.Get(FilterType)]; ok {
				q.Set(FilterType, wire)
			}
			txs, err := client.Transactions(ctx, q)
			return model.Page[model.StockTransaction]{Items: txs}, err
		},
	})
	svc.list.Subscribe(func(ctx context.Context, f model.Filter) error {
		return svc.refreshStats(ctx, f)
	})

	svc.form = form.New(form.Options[model.TransactionInput]{
		Name:     "transaction",
		Defaults: func() model.TransactionInput { return model.TransactionInput{Type: model.TransactionIn, Quantity: 1} },
		Validate: validate,
		Save: func(ctx context.Context, mode form.Mode, id string, in model.TransactionInput) error {
			if mode == form.ModeEdit {
				return client.UpdateTransaction(ctx, id, in)
			}
			return client.CreateTransaction(ctx, in)
		},
		OnSaved: svc.Refresh,
	})

	return svc
}

// Refresh reloads the list and the stats for the active date range.
func (svc *service) Refresh(ctx context.Context) error {
	if err := svc.list.Fetch(ctx); err != nil {
		return err
	}
	return svc.refreshStats(ctx, svc.list.Filters())
}

// SetFilter keeps "in"/"out" in the filter state; the fetch sends the backend's own values.
func (svc *service) SetFilter(ctx context.Context, patch model.Filter) error {
	return svc.list.SetFilter(ctx, patch)
}

func (svc *service) ResetFilters(ctx context.Context) error { return svc.list.Reset(ctx) }

func (svc *service) List() listing.State[model.StockTransaction] { return svc.list.State() }

func (svc *service) Stats() model.TransactionStats {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	return svc.stats
}

func (svc *service) refreshStats(ctx context.Context, f model.Filter) error {
	const op = "txservice.refreshStats"

	q := model.Filter{
		FilterStartDate: f.Get(FilterStartDate),
		FilterEndDate:   f.Get(FilterEndDate),
	}.Values()

	stats, err := svc.client.TransactionStats(ctx, q)
	if err != nil {
		logger.Error(ctx, "transaction stats", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	svc.mu.Lock()
	svc.stats = stats
	svc.mu.Unlock()
	return nil
}

func (svc *service) OpenForm(_ context.Context, id string) (form.State[model.TransactionInput], error) {
	const op = "txservice.OpenForm"

	if id == "" {
		return svc.form.OpenCreate(), nil
	}

	tx, ok := lo.Find(svc.list.Items(), func(t model.StockTransaction) bool { return t.ID == id })
	if !ok {
		return form.State[model.TransactionInput]{}, fmt.Errorf("%s: transaction %s: %w", op, id, model.ErrNotFound)
	}

	return svc.form.OpenEdit(id, model.TransactionInput{
		ProductID: tx.ProductID,
		Type:      tx.Type,
		Quantity:  tx.Quantity,
	}), nil
}

func (svc *service) SubmitForm(ctx context.Context, in model.TransactionInput) error {
	return svc.form.Submit(ctx, in)
}

func (svc *service) CancelForm() { svc.form.Cancel() }

func (svc *service) Form() form.State[model.TransactionInput] { return svc.form.State() }

func (svc *service) Delete(ctx context.Context, id string) error {
	const op = "txservice.Delete"

	if err := svc.client.DeleteTransaction(ctx, id); err != nil {
		logger.Error(ctx, "delete transaction", logger.String("transaction_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return svc.Refresh(ctx)
}

func validate(_ form.Mode, in model.TransactionInput) error {
	v := model.Violations{}
	validation.Required("product", in.ProductID, v)
	validation.Check("type", in.Type.Valid(), validation.CodeInvalid, v)
	validation.PositiveInt("quantity", in.Quantity, v)
	return validation.Err(v)
}
