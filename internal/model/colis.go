package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ParcelStatus string

const (
	StatusPending         ParcelStatus = "en_attente"
	StatusInTransit       ParcelStatus = "en_transit"
	StatusDelivered       ParcelStatus = "livre"
	StatusDeliveredClosed ParcelStatus = "livre_cloture"
	StatusReturned        ParcelStatus = "retourne"
	StatusCancelled       ParcelStatus = "annule"
)

var statusLabels = map[ParcelStatus]string{
	StatusPending:         "En attente",
	StatusInTransit:       "En transit",
	StatusDelivered:       "Livré",
	StatusDeliveredClosed: "Livré clôturé",
	StatusReturned:        "Retourné",
	StatusCancelled:       "Annulé",
}

// Label is the display text. The backend's own label wins when present on a record.
func (s ParcelStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// FilterPaymentMode is the payment-mode code used by the parcel list and its filters.
type FilterPaymentMode string

const (
	FilterPaymentCheque       FilterPaymentMode = "0"
	FilterPaymentCash         FilterPaymentMode = "2"
	FilterPaymentNoPreference FilterPaymentMode = "3"
)

var filterPaymentLabels = map[FilterPaymentMode]string{
	FilterPaymentCheque:       "Chèque",
	FilterPaymentCash:         "Espèce",
	FilterPaymentNoPreference: "Aucun Préférence",
}

func (m FilterPaymentMode) Label() string {
	if l, ok := filterPaymentLabels[m]; ok {
		return l
	}
	return string(m)
}

// ReviewPaymentMode is the payment-mode code offered by the review form.
// It does not agree with FilterPaymentMode; both mappings are kept as the backend sends them.
type ReviewPaymentMode string

const (
	ReviewPaymentCash   ReviewPaymentMode = "1"
	ReviewPaymentCheque ReviewPaymentMode = "2"
	ReviewPaymentCard   ReviewPaymentMode = "3"
)

var reviewPaymentLabels = map[ReviewPaymentMode]string{
	ReviewPaymentCash:   "Espèces",
	ReviewPaymentCheque: "Chèque",
	ReviewPaymentCard:   "Carte",
}

func (m ReviewPaymentMode) Label() string {
	if l, ok := reviewPaymentLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m ReviewPaymentMode) Valid() bool {
	_, ok := reviewPaymentLabels[m]
	return ok
}

type LineItem struct {
	ProductID string
	Quantity  int64
}

type Parcel struct {
	ID               string
	Barcode          string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Designation      string
	PaymentMode      string
	Amount           decimal.Decimal
	Invoice          string
	Cheque           string
	Motif            string
	Status           ParcelStatus
	StatusLabel      string
	CreatedAt        time.Time
	Items            []LineItem
}

// ParcelDraft is what the backend resolves from a bare barcode. It only seeds the review form.
type ParcelDraft struct {
	Parcel
}

// ReviewFields are the operator-editable fields of the review step.
type ReviewFields struct {
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Designation      string
	Amount           decimal.Decimal
	PaymentMode      ReviewPaymentMode
	Invoice          string
	Cheque           string
	Motif            string
}

// EditableLineItem is a line item in the review sub-editor. Key is transient and never sent.
type EditableLineItem struct {
	Key       uint64
	ProductID string
	Quantity  int64
}

// ParcelConfirmation is the payload of the confirm step.
type ParcelConfirmation struct {
	Barcode     string
	Status      ParcelStatus
	StatusLabel string
	ReviewFields
	Items []LineItem
}

type ParcelStatusStats struct {
	Status      string
	Count       int64
	TotalAmount decimal.Decimal
}

type ParcelStats struct {
	TotalParcels int64
	TotalAmount  decimal.Decimal
	ByStatus     []ParcelStatusStats
}
