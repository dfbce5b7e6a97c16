package backendclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/you-humble/colixy-dashboard/internal/client/converter"
	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

func (c *client) Parcels(ctx context.Context, query url.Values) ([]model.Parcel, error) {
	var res dto.Envelope[[]dto.Colis]
	err := c.doJSON(ctx, request{
		op:       "backend.Parcels",
		fallback: "Erreur lors du chargement des colis",
		method:   http.MethodGet,
		path:     "/colis",
		query:    query,
	}, nil, &res)
	if err != nil {
		return nil, err
	}

	return converter.ParcelsToModel(res.Data), nil
}

// CreateParcelDraft resolves a barcode into a draft parcel. Nothing is persisted until confirm.
func (c *client) CreateParcelDraft(ctx context.Context, barcode string) (*model.ParcelDraft, error) {
	const op = "backend.CreateParcelDraft"

	var res dto.Envelope[*dto.Colis]
	err := c.doJSON(ctx, request{
		op:       op,
		fallback: "Échec de la création du colis",
		method:   http.MethodPost,
		path:     "/colis",
	}, dto.ColisDraftRequest{CodeBarre: barcode}, &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, &model.RequestError{Op: op, Message: "Aucun colis trouvé pour ce code-barres", Cause: model.ErrNoDraft}
	}

	return &model.ParcelDraft{Parcel: converter.ParcelToModel(*res.Data)}, nil
}

func (c *client) ConfirmParcel(ctx context.Context, in model.ParcelConfirmation) (*model.Parcel, error) {
	var res dto.Envelope[*dto.Colis]
	err := c.doJSON(ctx, request{
		op:       "backend.ConfirmParcel",
		fallback: "Échec de la confirmation du colis",
		method:   http.MethodPost,
		path:     "/colis/confirm",
	}, converter.ParcelConfirmationToDTO(in), &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, nil
	}

	p := converter.ParcelToModel(*res.Data)
	return &p, nil
}

func (c *client) DeleteParcel(ctx context.Context, id string) error {
	return c.doJSON(ctx, request{
		op:       "backend.DeleteParcel",
		fallback: "Échec de la suppression",
		method:   http.MethodDelete,
		path:     pathID("/colis", id),
	}, nil, nil)
}

func (c *client) ParcelStats(ctx context.Context, query url.Values) (model.ParcelStats, error) {
	var res dto.Envelope[dto.ColisStats]
	err := c.doJSON(ctx, request{
		op:       "backend.ParcelStats",
		fallback: "Erreur lors du chargement des statistiques",
		method:   http.MethodGet,
		path:     "/colis/stats",
		query:    query,
	}, nil, &res)
	if err != nil {
		return model.ParcelStats{}, err
	}

	return converter.ParcelStatsToModel(res.Data), nil
}

// RefreshPendingStatuses asks the backend to re-poll the carrier for every pending parcel.
func (c *client) RefreshPendingStatuses(ctx context.Context) error {
	return c.doJSON(ctx, request{
		op:       "backend.RefreshPendingStatuses",
		fallback: "Échec de la mise à jour des statuts",
		method:   http.MethodPatch,
		path:     "/colis/update-pending-status",
	}, nil, nil)
}

func (c *client) MarkAsReturned(ctx context.Context, barcode string) (*model.Parcel, error) {
	var res dto.Envelope[*dto.Colis]
	err := c.doJSON(ctx, request{
		op:       "backend.MarkAsReturned",
		fallback: "Échec du marquage comme retourné",
		method:   http.MethodPatch,
		path:     pathID("/colis", barcode) + "/mark-as-returned",
	}, nil, &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, nil
	}

	p := converter.ParcelToModel(*res.Data)
	return &p, nil
}

func (c *client) ReturnStats(ctx context.Context, query url.Values) (model.ParcelStats, error) {
	var res dto.Envelope[dto.ColisStats]
	err := c.doJSON(ctx, request{
		op:       "backend.ReturnStats",
		fallback: "Erreur lors du chargement des statistiques",
		method:   http.MethodGet,
		path:     "/colis-retour/stats",
		query:    query,
	}, nil, &res)
	if err != nil {
		return model.ParcelStats{}, err
	}

	return converter.ParcelStatsToModel(res.Data), nil
}
