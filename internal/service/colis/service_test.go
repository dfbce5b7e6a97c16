package colisservice

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/mocks"
)

var parcels = []model.Parcel{
	{ID: "c1", Barcode: "CB-1", Status: model.StatusPending},
	{ID: "c2", Barcode: "CB-2", Status: model.StatusInTransit},
}

func activityOf(typ model.ActivityType) any {
	return mock.MatchedBy(func(a model.Activity) bool {
		return a.Type == typ && a.EventID != uuid.Nil && !a.OccurredAt.IsZero()
	})
}

func TestParcelFilters(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockParcelClient(t)
	svc := NewParcelService(client, fixedDecoder("x"), nil)
	ctx := context.Background()

	client.On("Parcels", mock.Anything, url.Values{"statut": {"livre"}, "minMontant": {"100"}}).
		Return(parcels[:1], nil).Once()
	require.NoError(t, svc.SetFilter(ctx, model.Filter{FilterStatus: "livre", FilterMinAmount: "100", FilterSearch: "  "}))
	assert.Len(t, svc.List().Items, 1)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	client.On("Parcels", mock.Anything, url.Values{
		"statut":     {"livre"},
		"minMontant": {"100"},
		"dateDebut":  {"2025-03-01T00:00:00Z"},
		"dateFin":    {"2025-03-31T00:00:00Z"},
	}).Return(parcels, nil).Once()
	require.NoError(t, svc.SetDateRange(ctx, from, to))
	assert.Len(t, svc.List().Items, 2)

	client.On("Parcels", mock.Anything, url.Values{}).Return(parcels, nil).Once()
	require.NoError(t, svc.ResetFilters(ctx))
	assert.Empty(t, svc.List().Filters.Values())
}

func TestRefreshPending(t *testing.T) {
	t.Parallel()

	t.Run("announces and refetches", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockParcelClient(t)
		activity := mocks.NewMockActivitySender(t)
		svc := NewParcelService(client, fixedDecoder("x"), activity)

		client.On("RefreshPendingStatuses", mock.Anything).Return(nil).Once()
		activity.On("SendActivity", mock.Anything, activityOf(model.ActivityPendingStatusRefresh)).Return(nil).Once()
		client.On("Parcels", mock.Anything, mock.Anything).Return(parcels, nil).Once()

		require.NoError(t, svc.RefreshPending(context.Background()))
		assert.Equal(t, model.StatusInTransit, svc.List().Items[1].Status)
	})

	t.Run("failure leaves the list alone", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockParcelClient(t)
		activity := mocks.NewMockActivitySender(t)
		svc := NewParcelService(client, fixedDecoder("x"), activity)

		client.On("RefreshPendingStatuses", mock.Anything).
			Return(&model.RequestError{Op: "x", Status: 500, Message: "Erreur lors de la mise à jour"}).Once()

		err := svc.RefreshPending(context.Background())
		assert.Equal(t, "Erreur lors de la mise à jour", model.UserMessage(err))
		activity.AssertNotCalled(t, "SendActivity", mock.Anything, mock.Anything)
		client.AssertNotCalled(t, "Parcels", mock.Anything, mock.Anything)
	})

	t.Run("activity failure is not fatal", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockParcelClient(t)
		activity := mocks.NewMockActivitySender(t)
		svc := NewParcelService(client, fixedDecoder("x"), activity)

		client.On("RefreshPendingStatuses", mock.Anything).Return(nil).Once()
		activity.On("SendActivity", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
		client.On("Parcels", mock.Anything, mock.Anything).Return(parcels, nil).Once()

		assert.NoError(t, svc.RefreshPending(context.Background()))
	})
}

func TestConfirmedParcelRefreshesList(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockParcelClient(t)
	activity := mocks.NewMockActivitySender(t)
	svc := NewParcelService(client, fixedDecoder("x"), activity)
	t.Cleanup(svc.Close)

	w := svc.Workflow()
	toReview(t, w, client, draftFor("CB-NEW", model.StatusPending))

	client.On("ConfirmParcel", mock.Anything, mock.Anything).Return(&model.Parcel{ID: "c9", Barcode: "CB-NEW"}, nil).Once()
	activity.On("SendActivity", mock.Anything, mock.MatchedBy(func(a model.Activity) bool {
		return a.Type == model.ActivityParcelConfirmed && a.Barcode == "CB-NEW" && a.ParcelID == "c9" &&
			a.Status == model.StatusPending
	})).Return(nil).Once()
	client.On("Parcels", mock.Anything, mock.Anything).
		Return(append(parcels, model.Parcel{ID: "c9", Barcode: "CB-NEW"}), nil).Once()

	_, err := w.Confirm(context.Background())
	require.NoError(t, err)
	assert.Len(t, svc.List().Items, 3)
}

func TestDeleteParcel(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockParcelClient(t)
	activity := mocks.NewMockActivitySender(t)
	svc := NewParcelService(client, fixedDecoder("x"), activity)

	client.On("DeleteParcel", mock.Anything, "c1").Return(nil).Once()
	activity.On("SendActivity", mock.Anything, activityOf(model.ActivityParcelDeleted)).Return(nil).Once()
	client.On("Parcels", mock.Anything, mock.Anything).Return(parcels[1:], nil).Once()

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	assert.Len(t, svc.List().Items, 1)
}

func TestReturnsScope(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockReturnClient(t)
	svc := NewReturnService(client, fixedDecoder("x"), nil)
	ctx := context.Background()

	returned := []model.Parcel{{ID: "r1", Barcode: "CB-R", Status: model.StatusReturned}}
	client.On("Parcels", mock.Anything, url.Values{"statut": {"retourne"}}).Return(returned, nil).Once()
	require.NoError(t, svc.Refresh(ctx))
	assert.Len(t, svc.List().Items, 1)

	client.On("Parcels", mock.Anything, url.Values{"statut": {"retourne"}, "search": {"CB"}}).Return(returned, nil).Once()
	require.NoError(t, svc.SetFilter(ctx, model.Filter{FilterSearch: "CB"}))

	// a filter outside the scope can never match
	require.NoError(t, svc.SetFilter(ctx, model.Filter{FilterStatus: string(model.StatusDelivered)}))
	assert.Empty(t, svc.List().Items)

	client.On("Parcels", mock.Anything, url.Values{"statut": {"retourne"}, "search": {"CB"}}).Return(returned, nil).Once()
	require.NoError(t, svc.SetFilter(ctx, model.Filter{FilterStatus: string(model.StatusReturned)}))
	assert.Len(t, svc.List().Items, 1)
}

func TestMarkReturned(t *testing.T) {
	t.Parallel()

	t.Run("uses the modal barcode", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockReturnClient(t)
		activity := mocks.NewMockActivitySender(t)
		svc := NewReturnService(client, fixedDecoder("x"), activity)
		ctx := context.Background()

		svc.OpenMark()
		require.NoError(t, svc.Entry().SetBarcode("CB-2"))

		client.On("MarkAsReturned", mock.Anything, "CB-2").
			Return(&model.Parcel{ID: "c2", Barcode: "CB-2", Status: model.StatusReturned}, nil).Once()
		activity.On("SendActivity", mock.Anything, mock.MatchedBy(func(a model.Activity) bool {
			return a.Type == model.ActivityParcelReturned && a.Barcode == "CB-2" && a.ParcelID == "c2"
		})).Return(nil).Once()
		client.On("Parcels", mock.Anything, url.Values{"statut": {"retourne"}}).
			Return([]model.Parcel{{ID: "c2", Status: model.StatusReturned}}, nil).Once()

		p, err := svc.MarkReturned(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, model.StatusReturned, p.Status)
		assert.False(t, svc.Entry().IsOpen())
		assert.Len(t, svc.List().Items, 1)
	})

	t.Run("refetch failure keeps the saved parcel", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockReturnClient(t)
		svc := NewReturnService(client, fixedDecoder("x"), nil)

		client.On("MarkAsReturned", mock.Anything, "CB-5").
			Return(&model.Parcel{ID: "c5", Barcode: "CB-5", Status: model.StatusReturned}, nil).Once()
		client.On("Parcels", mock.Anything, mock.Anything).
			Return(nil, &model.RequestError{Op: "x", Status: 502, Message: "Error loading parcels"}).Once()

		p, err := svc.MarkReturned(context.Background(), "CB-5")
		assert.ErrorIs(t, err, model.ErrRefreshAfterSave)
		require.NotNil(t, p)
		assert.Equal(t, "c5", p.ID)
	})

	t.Run("blank barcode", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockReturnClient(t)
		svc := NewReturnService(client, fixedDecoder("x"), nil)
		svc.OpenMark()

		_, err := svc.MarkReturned(context.Background(), "   ")
		assert.ErrorIs(t, err, model.ErrValidation)
		client.AssertNotCalled(t, "MarkAsReturned", mock.Anything, mock.Anything)
	})

	t.Run("unknown parcel keeps the modal open", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockReturnClient(t)
		svc := NewReturnService(client, fixedDecoder("x"), nil)
		svc.OpenMark()
		require.NoError(t, svc.Entry().SetBarcode("CB-X"))

		client.On("MarkAsReturned", mock.Anything, "CB-X").
			Return(nil, &model.RequestError{Op: "x", Status: 404, Message: "Colis non trouvé"}).Once()

		_, err := svc.MarkReturned(context.Background(), "")
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.True(t, svc.Entry().IsOpen())
		assert.Equal(t, "CB-X", svc.Entry().Barcode())
	})
}
