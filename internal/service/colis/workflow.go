package colisservice

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/validation"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

type Step string

const (
	StepIdle            Step = "idle"
	StepAwaitingBarcode Step = "awaiting_barcode"
	StepAwaitingReview  Step = "awaiting_review"
)

type DraftClient interface {
	CreateParcelDraft(ctx context.Context, barcode string) (*model.ParcelDraft, error)
	ConfirmParcel(ctx context.Context, in model.ParcelConfirmation) (*model.Parcel, error)
}

// ConfirmedFunc runs after the backend accepted a confirmation.
type ConfirmedFunc func(ctx context.Context, sent model.ParcelConfirmation, saved *model.Parcel) error

type LineItemPatch struct {
	ProductID *string
	Quantity  *int64
}

type WorkflowState struct {
	Step       Step
	Barcode    string
	Scanning   bool
	Submitting bool
	Draft      *model.ParcelDraft
	Review     model.ReviewFields
	Items      []model.EditableLineItem
}

// Workflow creates a parcel in two steps: a barcode is resolved into a draft by
// the backend, then the operator reviews it and confirms.
type Workflow struct {
	client      DraftClient
	entry       *BarcodeEntry
	onConfirmed ConfirmedFunc

	mu         sync.Mutex
	step       Step
	epoch      uint64
	submitting bool
	draft      *model.ParcelDraft
	review     model.ReviewFields
	items      []model.EditableLineItem
	nextKey    uint64
}

func NewWorkflow(client DraftClient, entry *BarcodeEntry, onConfirmed ConfirmedFunc) *Workflow {
	return &Workflow{
		client:      client,
		entry:       entry,
		onConfirmed: onConfirmed,
		step:        StepIdle,
	}
}

// Begin opens the barcode modal from a clean state.
func (w *Workflow) Begin() (WorkflowState, error) {
	const op = "colisservice.Workflow.Begin"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepAwaitingReview || w.submitting {
		return w.stateLocked(), fmt.Errorf("%s: from %s: %w", op, w.step, model.ErrInvalidTransition)
	}

	w.epoch++
	w.step = StepAwaitingBarcode
	w.draft = nil
	w.entry.Open()
	return w.stateLocked(), nil
}

func (w *Workflow) Entry() *BarcodeEntry { return w.entry }

func (w *Workflow) SetBarcode(code string) error {
	const op = "colisservice.Workflow.SetBarcode"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAwaitingBarcode {
		return fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}
	return w.entry.SetBarcode(code)
}

// SubmitBarcode asks the backend for a draft. On failure the barcode modal
// stays open; any running scan is stopped either way.
func (w *Workflow) SubmitBarcode(ctx context.Context) (WorkflowState, error) {
	const op = "colisservice.Workflow.SubmitBarcode"

	w.mu.Lock()
	if w.step != StepAwaitingBarcode || w.submitting {
		st := w.stateLocked()
		w.mu.Unlock()
		return st, fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}

	barcode := w.entry.Barcode()
	v := model.Violations{}
	validation.Required("barcode", barcode, v)
	if err := validation.Err(v); err != nil {
		st := w.stateLocked()
		w.mu.Unlock()
		return st, fmt.Errorf("%s: %w", op, err)
	}

	w.submitting = true
	epoch := w.epoch
	w.mu.Unlock()

	w.entry.StopScan()
	log := logger.With(logger.String("barcode", barcode))

	draft, err := w.client.CreateParcelDraft(ctx, barcode)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if epoch != w.epoch {
		log.Warn(ctx, "draft arrived after the workflow was cancelled")
		return w.stateLocked(), fmt.Errorf("%s: cancelled: %w", op, model.ErrInvalidTransition)
	}
	if err != nil {
		log.Error(ctx, "create parcel draft", logger.ErrorF(err))
		return w.stateLocked(), fmt.Errorf("%s: %w", op, err)
	}

	w.entry.Close()
	w.draft = draft
	w.review = reviewFromDraft(draft)
	w.items = w.items[:0:0]
	for _, it := range draft.Items {
		w.items = append(w.items, model.EditableLineItem{
			Key:       w.newKeyLocked(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	w.step = StepAwaitingReview

	log.Info(ctx, "parcel draft ready", logger.String("status", string(draft.Status)))
	return w.stateLocked(), nil
}

func reviewFromDraft(d *model.ParcelDraft) model.ReviewFields {
	return model.ReviewFields{
		RecipientName:    d.RecipientName,
		RecipientPhone:   d.RecipientPhone,
		RecipientAddress: d.RecipientAddress,
		Designation:      d.Designation,
		Amount:           d.Amount,
		PaymentMode:      model.ReviewPaymentMode(d.PaymentMode),
		Invoice:          d.Invoice,
		Cheque:           d.Cheque,
		Motif:            d.Motif,
	}
}

// UpdateReview replaces the editable fields. Barcode and status are not editable.
func (w *Workflow) UpdateReview(fields model.ReviewFields) (WorkflowState, error) {
	const op = "colisservice.Workflow.UpdateReview"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAwaitingReview {
		return w.stateLocked(), fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}
	w.review = fields
	return w.stateLocked(), nil
}

// AddItem appends a blank line item with quantity 1.
func (w *Workflow) AddItem() (model.EditableLineItem, error) {
	const op = "colisservice.Workflow.AddItem"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAwaitingReview {
		return model.EditableLineItem{}, fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}

	it := model.EditableLineItem{Key: w.newKeyLocked(), Quantity: 1}
	w.items = append(w.items, it)
	return it, nil
}

func (w *Workflow) RemoveItem(key uint64) error {
	const op = "colisservice.Workflow.RemoveItem"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAwaitingReview {
		return fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}

	i := w.indexLocked(key)
	if i < 0 {
		return fmt.Errorf("%s: key %d: %w", op, key, model.ErrLineItemNotFound)
	}
	w.items = slices.Delete(w.items, i, i+1)
	return nil
}

// UpdateItem changes one line item. Siblings are never touched.
func (w *Workflow) UpdateItem(key uint64, patch LineItemPatch) (model.EditableLineItem, error) {
	const op = "colisservice.Workflow.UpdateItem"

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAwaitingReview {
		return model.EditableLineItem{}, fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}

	i := w.indexLocked(key)
	if i < 0 {
		return model.EditableLineItem{}, fmt.Errorf("%s: key %d: %w", op, key, model.ErrLineItemNotFound)
	}

	it := w.items[i]
	if patch.ProductID != nil {
		it.ProductID = *patch.ProductID
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}
	w.items[i] = it
	return it, nil
}

// Confirm sends the reviewed parcel. The draft's barcode and status go out
// unchanged. On failure the review stays open with the draft kept.
func (w *Workflow) Confirm(ctx context.Context) (*model.Parcel, error) {
	const op = "colisservice.Workflow.Confirm"

	w.mu.Lock()
	if w.step != StepAwaitingReview || w.draft == nil || w.submitting {
		w.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}
	if err := validateReview(w.review, w.items); err != nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req := model.ParcelConfirmation{
		Barcode:      w.draft.Barcode,
		Status:       w.draft.Status,
		StatusLabel:  w.draft.StatusLabel,
		ReviewFields: w.review,
		Items:        make([]model.LineItem, 0, len(w.items)),
	}
	for _, it := range w.items {
		req.Items = append(req.Items, model.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	w.submitting = true
	epoch := w.epoch
	w.mu.Unlock()

	log := logger.With(
		logger.String("barcode", req.Barcode),
		logger.String("status", string(req.Status)),
		logger.Int("number_items", len(req.Items)),
	)

	saved, err := w.client.ConfirmParcel(ctx, req)

	w.mu.Lock()
	w.submitting = false
	if err != nil {
		w.mu.Unlock()
		log.Error(ctx, "confirm parcel", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if epoch == w.epoch {
		w.resetLocked()
	}
	w.mu.Unlock()

	log.Info(ctx, "parcel confirmed")

	if w.onConfirmed != nil {
		if err := w.onConfirmed(ctx, req, saved); err != nil {
			return saved, fmt.Errorf("%s: %w: %w", op, model.ErrRefreshAfterSave, err)
		}
	}
	return saved, nil
}

// Cancel discards any draft from either modal without calling the backend.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetLocked()
}

func (w *Workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stateLocked()
}

func (w *Workflow) resetLocked() {
	w.epoch++
	w.step = StepIdle
	w.draft = nil
	w.review = model.ReviewFields{}
	w.items = nil
	w.entry.Close()
}

func (w *Workflow) newKeyLocked() uint64 {
	w.nextKey++
	return w.nextKey
}

func (w *Workflow) indexLocked(key uint64) int {
	return slices.IndexFunc(w.items, func(it model.EditableLineItem) bool { return it.Key == key })
}

func (w *Workflow) stateLocked() WorkflowState {
	st := WorkflowState{
		Step:       w.step,
		Submitting: w.submitting,
		Review:     w.review,
		Items:      slices.Clone(w.items),
	}
	if w.step == StepAwaitingBarcode {
		st.Barcode = w.entry.Barcode()
		st.Scanning = w.entry.Scanning()
	}
	if w.draft != nil {
		d := *w.draft
		d.Items = slices.Clone(d.Items)
		st.Draft = &d
	}
	if st.Items == nil {
		st.Items = []model.EditableLineItem{}
	}
	return st
}

func validateReview(r model.ReviewFields, items []model.EditableLineItem) error {
	v := model.Violations{}
	validation.Required("recipientName", r.RecipientName, v)
	validation.Required("recipientPhone", r.RecipientPhone, v)
	validation.Phone("recipientPhone", r.RecipientPhone, v)
	validation.Required("recipientAddress", r.RecipientAddress, v)
	validation.Required("designation", r.Designation, v)
	validation.NonNegativeDecimal("amount", r.Amount, v)
	validation.Required("paymentMode", string(r.PaymentMode), v)
	validation.Check("paymentMode", r.PaymentMode.Valid(), validation.CodeInvalid, v)

	for _, it := range items {
		prefix := "items[" + strconv.FormatUint(it.Key, 10) + "]."
		validation.Required(prefix+"product", it.ProductID, v)
		validation.PositiveInt(prefix+"quantity", it.Quantity, v)
	}

	return validation.Err(v)
}
