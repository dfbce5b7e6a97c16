package colisservice

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
	"github.com/you-humble/colixy-dashboard/internal/service/scanner"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

type ReturnClient interface {
	Parcels(ctx context.Context, query url.Values) ([]model.Parcel, error)
	MarkAsReturned(ctx context.Context, barcode string) (*model.Parcel, error)
	DeleteParcel(ctx context.Context, id string) error
	ReturnStats(ctx context.Context, query url.Values) (model.ParcelStats, error)
}

type returns struct {
	client   ReturnClient
	activity ActivitySender
	list     *listing.Controller[model.Parcel]
	entry    *BarcodeEntry
}

// NewReturnService lists returned parcels only. User filters narrow that scope
// and never widen it.
func NewReturnService(client ReturnClient, decoder scanner.Decoder, activity ActivitySender) *returns {
	return &returns{
		client:   client,
		activity: activity,
		list: listing.New(listing.Options[model.Parcel]{
			Name:  "colis-retour",
			Scope: model.Filter{FilterStatus: string(model.StatusReturned)},
			Fetch: parcelFetcher(client.Parcels),
		}),
		entry: NewBarcodeEntry(decoder),
	}
}

func (svc *returns) Entry() *BarcodeEntry { return svc.entry }

func (svc *returns) Refresh(ctx context.Context) error { return svc.list.Fetch(ctx) }

func (svc *returns) SetFilter(ctx context.Context, patch model.Filter) error {
	return svc.list.SetFilter(ctx, patch)
}

func (svc *returns) ResetFilters(ctx context.Context) error { return svc.list.Reset(ctx) }

func (svc *returns) List() listing.State[model.Parcel] { return svc.list.State() }

// OpenMark shows the barcode modal for a return.
func (svc *returns) OpenMark() { svc.entry.Open() }

func (svc *returns) CancelMark() { svc.entry.Close() }

// MarkReturned moves an existing parcel to the returned status. An empty
// barcode falls back to the one entered or scanned in the modal.
func (svc *returns) MarkReturned(ctx context.Context, barcode string) (*model.Parcel, error) {
	const op = "colisservice.MarkReturned"

	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		barcode = svc.entry.Barcode()
	}

	v := model.Violations{}
	validation.Required("barcode", barcode, v)
	if err := validation.Err(v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.entry.StopScan()
	log := logger.With(logger.String("barcode", barcode))

	p, err := svc.client.MarkAsReturned(ctx, barcode)
	if err != nil {
		log.Error(ctx, "mark parcel as returned", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	svc.entry.Close()

	a := model.Activity{Type: model.ActivityParcelReturned, Barcode: barcode, Status: model.StatusReturned}
	if p != nil {
		a.ParcelID = p.ID
	}
	announce(ctx, svc.activity, a)

	log.Info(ctx, "parcel marked as returned")
	if err := svc.list.Fetch(ctx); err != nil {
		return p, fmt.Errorf("%s: %w: %w", op, model.ErrRefreshAfterSave, err)
	}
	return p, nil
}

func (svc *returns) Delete(ctx context.Context, id string) error {
	const op = "colisservice.returns.Delete"

	if err := svc.client.DeleteParcel(ctx, id); err != nil {
		logger.Error(ctx, "delete returned parcel", logger.String("parcel_id", id), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	announce(ctx, svc.activity, model.Activity{Type: model.ActivityParcelDeleted, ParcelID: id})
	return svc.list.Fetch(ctx)
}

func (svc *returns) Stats(ctx context.Context) (model.ParcelStats, error) {
	const op = "colisservice.returns.Stats"

	stats, err := svc.client.ReturnStats(ctx, nil)
	if err != nil {
		logger.Error(ctx, "return stats", logger.ErrorF(err))
		return model.ParcelStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

func (svc *returns) Close() { svc.entry.Close() }
