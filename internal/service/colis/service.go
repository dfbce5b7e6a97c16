package colisservice

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
	"github.com/you-humble/colixy-dashboard/internal/service/scanner"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

// Filter keys understood by GET /colis.
const (
	FilterSearch      = "search"
	FilterStatus      = "statut"
	FilterPaymentMode = "payement_mode"
	FilterMinAmount   = "minMontant"
	FilterMaxAmount   = "maxMontant"
	FilterDateFrom    = "dateDebut"
	FilterDateTo      = "dateFin"
)

type ParcelClient interface {
	DraftClient
	Parcels(ctx context.Context, query url.Values) ([]model.Parcel, error)
	DeleteParcel(ctx context.Context, id string) error
	ParcelStats(ctx context.Context, query url.Values) (model.ParcelStats, error)
	RefreshPendingStatuses(ctx context.Context) error
}

type ActivitySender interface {
	SendActivity(ctx context.Context, event model.Activity) error
}

type service struct {
	client   ParcelClient
	activity ActivitySender
	list     *listing.Controller[model.Parcel]
	workflow *Workflow
}

func NewParcelService(client ParcelClient, decoder scanner.Decoder, activity ActivitySender) *service {
	svc := &service{client: client, activity: activity}

	svc.list = listing.New(listing.Options[model.Parcel]{
		Name:  "colis",
		Fetch: parcelFetcher(client.Parcels),
	})
	svc.workflow = NewWorkflow(client, NewBarcodeEntry(decoder), svc.confirmed)

	return svc
}

func parcelFetcher(fetch func(context.Context, url.Values) ([]model.Parcel, error)) listing.Fetcher[model.Parcel] {
	return func(ctx context.Context, q url.Values) (model.Page[model.Parcel], error) {
		parcels, err := fetch(ctx, q)
		return model.Page[model.Parcel]{Items: parcels}, err
	}
}

func (svc *service) Workflow() *Workflow { return svc.workflow }

func (svc *service) Refresh(ctx context.Context) error { return svc.list.Fetch(ctx) }

func (svc *service) SetFilter(ctx context.Context, patch model.Filter) error {
	return svc.list.SetFilter(ctx, patch)
}

// SetDateRange filters on creation date. A zero bound clears the range.
func (svc *service) SetDateRange(ctx context.Context, from, to time.Time) error {
	patch := model.Filter{}.DateRange(FilterDateFrom, FilterDateTo, from, to)
	return svc.list.SetFilter(ctx, patch)
}

func (svc *service) ResetFilters(ctx context.Context) error { return svc.list.Reset(ctx) }

func (svc *service) List() listing.State[model.Parcel] { return svc.list.State() }

func (svc *service) Stats(ctx context.Context) (model.ParcelStats, error) {
	const op = "colisservice.Stats"

	stats, err := svc.client.ParcelStats(ctx, nil)
	if err != nil {
		logger.Error(ctx, "parcel stats", logger.ErrorF(err))
		return model.ParcelStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (svc *service) Delete(ctx context.Context, id string) error {
	const op = "colisservice.Delete"

	if err := svc.client.DeleteParcel(ctx, id); err != nil {
		logger.Error(ctx, "delete parcel", logger.String("parcel_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	announce(ctx, svc.activity, model.Activity{Type: model.ActivityParcelDeleted, ParcelID: id})
	return svc.list.Fetch(ctx)
}

// RefreshPending triggers the backend's bulk status update, then trusts the refetched list.
func (svc *service) RefreshPending(ctx context.Context) error {
	const op = "colisservice.RefreshPending"

	if err := svc.client.RefreshPendingStatuses(ctx); err != nil {
		logger.Error(ctx, "refresh pending statuses", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	announce(ctx, svc.activity, model.Activity{Type: model.ActivityPendingStatusRefresh})
	return svc.list.Fetch(ctx)
}

func (svc *service) confirmed(ctx context.Context, sent model.ParcelConfirmation, saved *model.Parcel) error {
	a := model.Activity{
		Type:    model.ActivityParcelConfirmed,
		Barcode: sent.Barcode,
		Status:  sent.Status,
	}
	if saved != nil {
		a.ParcelID = saved.ID
	}
	announce(ctx, svc.activity, a)

	return svc.list.Fetch(ctx)
}

// Close stops any running scan.
func (svc *service) Close() { svc.workflow.Cancel() }

// announce publishes an activity event. The backend already accepted the
// change, so a failure is only logged.
func announce(ctx context.Context, sender ActivitySender, a model.Activity) {
	if sender == nil {
		return
	}
	if a.EventID == uuid.Nil {
		a.EventID = uuid.New()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}

	if err := sender.SendActivity(ctx, a); err != nil {
		logger.Warn(ctx, "send activity",
			logger.String("type", string(a.Type)),
			logger.String("barcode", a.Barcode),
			logger.ErrorF(err),
		)
	}
}
