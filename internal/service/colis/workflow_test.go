package colisservice

import (
	"context"
	"errors"
	"image"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/mocks"
	"github.com/you-humble/colixy-dashboard/internal/service/scanner"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

// fixedDecoder reads the same code from every non-nil frame.
type fixedDecoder string

func (d fixedDecoder) Decode(img image.Image) (string, error) {
	if img == nil {
		return "", scanner.ErrNoBarcode
	}
	return string(d), nil
}

func draftFor(barcode string, status model.ParcelStatus) *model.ParcelDraft {
	return &model.ParcelDraft{Parcel: model.Parcel{
		Barcode:          barcode,
		RecipientName:    "Awa Diop",
		RecipientPhone:   "+221 77 000 00 00",
		RecipientAddress: "12 rue des Manguiers",
		Designation:      "Colis standard",
		PaymentMode:      "1",
		Amount:           decimal.RequireFromString("15000"),
		Status:           status,
		StatusLabel:      status.Label(),
		Items: []model.LineItem{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P2", Quantity: 1},
		},
	}}
}

func newWorkflow(t *testing.T) (*Workflow, *mocks.MockParcelClient) {
	t.Helper()

	client := mocks.NewMockParcelClient(t)
	w := NewWorkflow(client, NewBarcodeEntry(fixedDecoder("SCANNED-1")), nil)
	t.Cleanup(w.Cancel)
	return w, client
}

func toReview(t *testing.T, w *Workflow, client *mocks.MockParcelClient, draft *model.ParcelDraft) WorkflowState {
	t.Helper()

	_, err := w.Begin()
	require.NoError(t, err)
	require.NoError(t, w.SetBarcode(draft.Barcode))

	client.On("CreateParcelDraft", mock.Anything, draft.Barcode).Return(draft, nil).Once()
	st, err := w.SubmitBarcode(context.Background())
	require.NoError(t, err)
	return st
}

func TestDraftSeedsReviewVerbatim(t *testing.T) {
	t.Parallel()

	w, client := newWorkflow(t)
	draft := draftFor("CB-100", model.StatusPending)

	st := toReview(t, w, client, draft)

	assert.Equal(t, StepAwaitingReview, st.Step)
	assert.Equal(t, reviewFromDraft(draft), st.Review)
	assert.Equal(t, model.ReviewPaymentCash, st.Review.PaymentMode)
	require.Len(t, st.Items, 2)
	assert.Equal(t, "P1", st.Items[0].ProductID)
	assert.Equal(t, int64(2), st.Items[0].Quantity)
	assert.NotEqual(t, st.Items[0].Key, st.Items[1].Key)
	assert.False(t, w.Entry().IsOpen())
}

func TestSubmitBarcode(t *testing.T) {
	t.Parallel()

	t.Run("blank barcode never reaches the backend", func(t *testing.T) {
		t.Parallel()

		w, client := newWorkflow(t)
		_, err := w.Begin()
		require.NoError(t, err)

		st, err := w.SubmitBarcode(context.Background())
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, StepAwaitingBarcode, st.Step)
		client.AssertNotCalled(t, "CreateParcelDraft", mock.Anything, mock.Anything)
	})

	t.Run("backend failure keeps the modal", func(t *testing.T) {
		t.Parallel()

		w, client := newWorkflow(t)
		_, err := w.Begin()
		require.NoError(t, err)
		require.NoError(t, w.SetBarcode(" CB-404 "))

		client.On("CreateParcelDraft", mock.Anything, "CB-404").
			Return(nil, &model.RequestError{Op: "x", Status: 404, Message: "Colis introuvable"}).Once()

		st, err := w.SubmitBarcode(context.Background())
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Equal(t, "Colis introuvable", model.UserMessage(err))
		assert.Equal(t, StepAwaitingBarcode, st.Step)
		assert.Equal(t, "CB-404", st.Barcode)
		assert.Nil(t, st.Draft)
	})

	t.Run("not open", func(t *testing.T) {
		t.Parallel()

		w, _ := newWorkflow(t)
		_, err := w.SubmitBarcode(context.Background())
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
		assert.ErrorIs(t, w.SetBarcode("CB-1"), model.ErrInvalidTransition)
	})
}

func TestScannedBarcodeFillsField(t *testing.T) {
	t.Parallel()

	w, client := newWorkflow(t)
	_, err := w.Begin()
	require.NoError(t, err)

	entry := w.Entry()
	require.NoError(t, entry.StartScan(context.Background()))
	assert.ErrorIs(t, entry.StartScan(context.Background()), model.ErrScanInProgress)

	require.NoError(t, entry.PushFrame(image.NewGray(image.Rect(0, 0, 4, 4))))
	require.Eventually(t, func() bool { return entry.Barcode() == "SCANNED-1" }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !entry.Scanning() }, time.Second, 5*time.Millisecond)

	client.On("CreateParcelDraft", mock.Anything, "SCANNED-1").Return(draftFor("SCANNED-1", model.StatusPending), nil).Once()
	st, err := w.SubmitBarcode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SCANNED-1", st.Draft.Barcode)
}

func TestCancelLeavesCleanState(t *testing.T) {
	t.Parallel()

	w, client := newWorkflow(t)
	toReview(t, w, client, draftFor("CB-7", model.StatusPending))
	_, err := w.AddItem()
	require.NoError(t, err)

	w.Cancel()

	st := w.State()
	assert.Equal(t, StepIdle, st.Step)
	assert.Nil(t, st.Draft)
	assert.Empty(t, st.Items)
	assert.Equal(t, model.ReviewFields{}, st.Review)
	assert.False(t, w.Entry().IsOpen())

	st, err = w.Begin()
	require.NoError(t, err)
	assert.Equal(t, StepAwaitingBarcode, st.Step)
	assert.Empty(t, st.Barcode)
}

func TestLateDraftAfterCancelIsDropped(t *testing.T) {
	t.Parallel()

	w, client := newWorkflow(t)
	_, err := w.Begin()
	require.NoError(t, err)
	require.NoError(t, w.SetBarcode("CB-SLOW"))

	started := make(chan struct{})
	release := make(chan struct{})
	client.On("CreateParcelDraft", mock.Anything, "CB-SLOW").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(draftFor("CB-SLOW", model.StatusPending), nil).Once()

	errc := make(chan error, 1)
	go func() {
		_, err := w.SubmitBarcode(context.Background())
		errc <- err
	}()

	<-started
	w.Cancel()
	close(release)

	assert.ErrorIs(t, <-errc, model.ErrInvalidTransition)
	st := w.State()
	assert.Equal(t, StepIdle, st.Step)
	assert.Nil(t, st.Draft)
}

func TestLineItems(t *testing.T) {
	t.Parallel()

	w, client := newWorkflow(t)
	st := toReview(t, w, client, draftFor("CB-9", model.StatusPending))
	first, second := st.Items[0], st.Items[1]

	const n = 3
	added := make([]model.EditableLineItem, 0, n)
	for range n {
		it, err := w.AddItem()
		require.NoError(t, err)
		assert.Equal(t, int64(1), it.Quantity)
		assert.Empty(t, it.ProductID)
		added = append(added, it)
	}
	require.Len(t, w.State().Items, 2+n)

	require.NoError(t, w.RemoveItem(added[1].Key))
	items := w.State().Items
	require.Len(t, items, 2+n-1)
	for _, it := range items {
		assert.NotEqual(t, added[1].Key, it.Key)
	}

	qty := int64(9)
	product := "P9"
	updated, err := w.UpdateItem(second.Key, LineItemPatch{ProductID: &product, Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "P9", updated.ProductID)

	items = w.State().Items
	assert.Equal(t, first, items[0])
	assert.Equal(t, model.EditableLineItem{Key: second.Key, ProductID: "P9", Quantity: 9}, items[1])
	assert.Equal(t, added[0], items[2])
	assert.Equal(t, added[2], items[3])

	assert.ErrorIs(t, w.RemoveItem(added[1].Key), model.ErrLineItemNotFound)
	_, err = w.UpdateItem(999, LineItemPatch{Quantity: &qty})
	assert.ErrorIs(t, err, model.ErrLineItemNotFound)
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	t.Run("carries the draft status and barcode", func(t *testing.T) {
		t.Parallel()

		var (
			sentSeen  model.ParcelConfirmation
			savedSeen *model.Parcel
		)
		client := mocks.NewMockParcelClient(t)
		w := NewWorkflow(client, NewBarcodeEntry(fixedDecoder("x")),
			func(_ context.Context, sent model.ParcelConfirmation, saved *model.Parcel) error {
				sentSeen, savedSeen = sent, saved
				return nil
			})

		st := toReview(t, w, client, draftFor("CB-LIV", model.StatusDelivered))
		review := st.Review
		review.RecipientName = "Moussa Fall"
		_, err := w.UpdateReview(review)
		require.NoError(t, err)

		saved := &model.Parcel{ID: "c-1", Barcode: "CB-LIV", Status: model.StatusDelivered}
		client.On("ConfirmParcel", mock.Anything, mock.MatchedBy(func(in model.ParcelConfirmation) bool {
			return in.Barcode == "CB-LIV" &&
				in.Status == model.StatusDelivered &&
				in.RecipientName == "Moussa Fall" &&
				len(in.Items) == 2 && in.Items[0] == model.LineItem{ProductID: "P1", Quantity: 2}
		})).Return(saved, nil).Once()

		got, err := w.Confirm(context.Background())
		require.NoError(t, err)
		assert.Equal(t, saved, got)
		assert.Equal(t, StepIdle, w.State().Step)
		assert.Equal(t, model.StatusDelivered, sentSeen.Status)
		assert.Equal(t, saved, savedSeen)
	})

	t.Run("backend failure keeps the review", func(t *testing.T) {
		t.Parallel()

		w, client := newWorkflow(t)
		toReview(t, w, client, draftFor("CB-ERR", model.StatusPending))

		client.On("ConfirmParcel", mock.Anything, mock.Anything).
			Return(nil, &model.RequestError{Op: "x", Status: 500, Message: "Erreur serveur"}).Once()

		_, err := w.Confirm(context.Background())
		assert.ErrorIs(t, err, model.ErrRequestFailed)

		st := w.State()
		assert.Equal(t, StepAwaitingReview, st.Step)
		require.NotNil(t, st.Draft)
		assert.Equal(t, "CB-ERR", st.Draft.Barcode)
		assert.Len(t, st.Items, 2)
	})

	t.Run("invalid review never reaches the backend", func(t *testing.T) {
		t.Parallel()

		w, client := newWorkflow(t)
		st := toReview(t, w, client, draftFor("CB-BAD", model.StatusPending))

		review := st.Review
		review.RecipientPhone = "not a phone"
		review.PaymentMode = "7"
		_, err := w.UpdateReview(review)
		require.NoError(t, err)

		zero := int64(0)
		_, err = w.UpdateItem(st.Items[1].Key, LineItemPatch{Quantity: &zero})
		require.NoError(t, err)

		_, err = w.Confirm(context.Background())
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "invalid", vErr.Violations["recipientPhone"])
		assert.Equal(t, "invalid", vErr.Violations["paymentMode"])
		assert.Contains(t, vErr.Violations, "items["+strconv.FormatUint(st.Items[1].Key, 10)+"].quantity")
		client.AssertNotCalled(t, "ConfirmParcel", mock.Anything, mock.Anything)
	})

	t.Run("refresh failure after confirm is reported", func(t *testing.T) {
		t.Parallel()

		client := mocks.NewMockParcelClient(t)
		w := NewWorkflow(client, NewBarcodeEntry(fixedDecoder("x")),
			func(context.Context, model.ParcelConfirmation, *model.Parcel) error {
				return errors.New("list down")
			})
		toReview(t, w, client, draftFor("CB-2", model.StatusPending))
		client.On("ConfirmParcel", mock.Anything, mock.Anything).Return(&model.Parcel{ID: "c-2"}, nil).Once()

		saved, err := w.Confirm(context.Background())
		assert.ErrorIs(t, err, model.ErrRefreshAfterSave)
		assert.Equal(t, "c-2", saved.ID)
		assert.Equal(t, StepIdle, w.State().Step)
	})
}

func TestBeginRejectedDuringReview(t *testing.T) {
	t.Parallel()

	w, client := newWorkflow(t)
	toReview(t, w, client, draftFor("CB-3", model.StatusPending))

	_, err := w.Begin()
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Equal(t, StepAwaitingReview, w.State().Step)
}
