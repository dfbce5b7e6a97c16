package http

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/colixy-dashboard/internal/model"
	colisservice "github.com/you-humble/colixy-dashboard/internal/service/colis"
	"github.com/you-humble/colixy-dashboard/internal/service/form"
	"github.com/you-humble/colixy-dashboard/internal/service/listing"
)

type listView[T any] struct {
	Items    []T          `json:"items"`
	Filters  model.Filter `json:"filters"`
	Loading  bool         `json:"loading"`
	Page     int          `json:"page,omitempty"`
	PageSize int          `json:"pageSize,omitempty"`
	Total    int          `json:"total,omitempty"`
}

func toListView[T, O any](st listing.State[T], conv func(T) O) listView[O] {
	return listView[O]{
		Items:    lo.Map(st.Items, func(it T, _ int) O { return conv(it) }),
		Filters:  st.Filters,
		Loading:  st.Loading,
		Page:     st.Page,
		PageSize: st.PageSize,
		Total:    st.Total,
	}
}

type formView[V any] struct {
	Open       bool   `json:"open"`
	Mode       string `json:"mode,omitempty"`
	ID         string `json:"id,omitempty"`
	Values     V      `json:"values"`
	Submitting bool   `json:"submitting"`
}

func toFormView[V, O any](st form.State[V], conv func(V) O) formView[O] {
	return formView[O]{
		Open:       st.Open,
		Mode:       string(st.Mode),
		ID:         st.ID,
		Values:     conv(st.Values),
		Submitting: st.Submitting,
	}
}

// pageView is what every entity endpoint answers with.
type pageView[T, V any] struct {
	List listView[T] `json:"list"`
	Form formView[V] `json:"form"`
}

// ======= Auth =======

type userView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"telephone,omitempty"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func toUserView(u model.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		LastLogin: u.LastLogin,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"telephone"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userInputView struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"telephone"`
	Role            string `json:"role"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

func toUserInputView(in model.UserInput) userInputView {
	// the form never echoes passwords
	return userInputView{Name: in.Name, Email: in.Email, Phone: in.Phone, Role: string(in.Role)}
}

func (v userInputView) model() model.UserInput {
	return model.UserInput{
		Name:            v.Name,
		Email:           v.Email,
		Phone:           v.Phone,
		Role:            model.Role(v.Role),
		Password:        v.Password,
		ConfirmPassword: v.ConfirmPassword,
	}
}

// ======= Layout =======

type menuItemView struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Path     string         `json:"path,omitempty"`
	Children []menuItemView `json:"children,omitempty"`
}

type layoutView struct {
	Menu         []menuItemView `json:"menu"`
	SelectedKeys []string       `json:"selectedKeys"`
	Breadcrumbs  []string       `json:"breadcrumbs"`
}

func toMenuItemView(m model.MenuItem) menuItemView {
	return menuItemView{
		Key:      m.Key,
		Label:    m.Label,
		Path:     m.Path,
		Children: lo.Map(m.Children, func(c model.MenuItem, _ int) menuItemView { return toMenuItemView(c) }),
	}
}

func toLayoutView(l model.Layout) layoutView {
	return layoutView{
		Menu:         lo.Map(l.Menu, func(m model.MenuItem, _ int) menuItemView { return toMenuItemView(m) }),
		SelectedKeys: l.SelectedKeys,
		Breadcrumbs:  lo.Map(l.Breadcrumbs, func(b model.Breadcrumb, _ int) string { return b.Title }),
	}
}

// ======= Inventory =======

type categoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCategoryView(c model.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, Description: c.Description}
}

type categoryInputView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCategoryInputView(in model.CategoryInput) categoryInputView {
	return categoryInputView{Name: in.Name, Description: in.Description}
}

func (v categoryInputView) model() model.CategoryInput {
	return model.CategoryInput{Name: v.Name, Description: v.Description}
}

type productView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stockQuantity"`
	CategoryID    string          `json:"category"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

func toProductView(p model.Product) productView {
	return productView{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
	}
}

type productInputView struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stockQuantity"`
	CategoryName  string          `json:"category"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

func toProductInputView(in model.ProductInput) productInputView {
	return productInputView{
		Name:          in.Name,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryName:  in.CategoryName,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
	}
}

func (v productInputView) model() model.ProductInput {
	return model.ProductInput{
		Name:          v.Name,
		Price:         v.Price,
		StockQuantity: v.StockQuantity,
		CategoryName:  v.CategoryName,
		Description:   v.Description,
		ImageURL:      v.ImageURL,
	}
}

type transactionView struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toTransactionView(t model.StockTransaction) transactionView {
	return transactionView{
		ID:          t.ID,
		ProductID:   t.ProductID,
		ProductName: t.ProductName,
		Type:        string(t.Type),
		Quantity:    t.Quantity,
		CreatedAt:   t.CreatedAt,
	}
}

type transactionInputView struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"`
}

func toTransactionInputView(in model.TransactionInput) transactionInputView {
	return transactionInputView{ProductID: in.ProductID, Type: string(in.Type), Quantity: in.Quantity}
}

func (v transactionInputView) model() model.TransactionInput {
	return model.TransactionInput{ProductID: v.ProductID, Type: model.TransactionType(v.Type), Quantity: v.Quantity}
}

type transactionTypeStatsView struct {
	Type          string `json:"type"`
	Count         int64  `json:"count"`
	TotalQuantity int64  `json:"totalQuantity"`
}

type transactionStatsView struct {
	TotalTransactions int64                      `json:"totalTransactions"`
	TotalIn           int64                      `json:"totalIn"`
	TotalOut          int64                      `json:"totalOut"`
	StockNet          int64                      `json:"stockNet"`
	Details           []transactionTypeStatsView `json:"details"`
}

func toTransactionStatsView(s model.TransactionStats) transactionStatsView {
	return transactionStatsView{
		TotalTransactions: s.TotalTransactions,
		TotalIn:           s.TotalIn,
		TotalOut:          s.TotalOut,
		StockNet:          s.StockNet,
		Details: lo.Map(s.Details, func(d model.TransactionTypeStats, _ int) transactionTypeStatsView {
			return transactionTypeStatsView{Type: string(d.Type), Count: d.Count, TotalQuantity: d.TotalQuantity}
		}),
	}
}

// ======= Colis =======

type lineItemView struct {
	Key       uint64 `json:"key,omitempty"`
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type parcelView struct {
	ID               string          `json:"id,omitempty"`
	Barcode          string          `json:"codeBarre"`
	RecipientName    string          `json:"nomDestinataire"`
	RecipientPhone   string          `json:"telephoneDestinataire"`
	RecipientAddress string          `json:"adresseDestinataire"`
	Designation      string          `json:"designation"`
	PaymentMode      string          `json:"payementMode"`
	PaymentLabel     string          `json:"payementModeLabel"`
	Amount           decimal.Decimal `json:"montant"`
	Invoice          string          `json:"facture,omitempty"`
	Cheque           string          `json:"cheque,omitempty"`
	Motif            string          `json:"motif,omitempty"`
	Status           string          `json:"statut"`
	StatusLabel      string          `json:"statutLabel"`
	CreatedAt        *time.Time      `json:"dateCreation,omitempty"`
	Items            []lineItemView  `json:"produits"`
}

func toParcelView(p model.Parcel) parcelView {
	v := parcelView{
		ID:               p.ID,
		Barcode:          p.Barcode,
		RecipientName:    p.RecipientName,
		RecipientPhone:   p.RecipientPhone,
		RecipientAddress: p.RecipientAddress,
		Designation:      p.Designation,
		PaymentMode:      p.PaymentMode,
		PaymentLabel:     model.FilterPaymentMode(p.PaymentMode).Label(),
		Amount:           p.Amount,
		Invoice:          p.Invoice,
		Cheque:           p.Cheque,
		Motif:            p.Motif,
		Status:           string(p.Status),
		StatusLabel:      p.StatusLabel,
		Items: lo.Map(p.Items, func(it model.LineItem, _ int) lineItemView {
			return lineItemView{ProductID: it.ProductID, Quantity: it.Quantity}
		}),
	}
	if v.StatusLabel == "" {
		v.StatusLabel = p.Status.Label()
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		v.CreatedAt = &t
	}
	return v
}

type reviewView struct {
	RecipientName    string          `json:"nomDestinataire"`
	RecipientPhone   string          `json:"telephoneDestinataire"`
	RecipientAddress string          `json:"adresseDestinataire"`
	Designation      string          `json:"designation"`
	Amount           decimal.Decimal `json:"montant"`
	PaymentMode      string          `json:"payementMode"`
	Invoice          string          `json:"facture"`
	Cheque           string          `json:"cheque"`
	Motif            string          `json:"motif"`
}

func toReviewView(r model.ReviewFields) reviewView {
	return reviewView{
		RecipientName:    r.RecipientName,
		RecipientPhone:   r.RecipientPhone,
		RecipientAddress: r.RecipientAddress,
		Designation:      r.Designation,
		Amount:           r.Amount,
		PaymentMode:      string(r.PaymentMode),
		Invoice:          r.Invoice,
		Cheque:           r.Cheque,
		Motif:            r.Motif,
	}
}

func (v reviewView) model() model.ReviewFields {
	return model.ReviewFields{
		RecipientName:    v.RecipientName,
		RecipientPhone:   v.RecipientPhone,
		RecipientAddress: v.RecipientAddress,
		Designation:      v.Designation,
		Amount:           v.Amount,
		PaymentMode:      model.ReviewPaymentMode(v.PaymentMode),
		Invoice:          v.Invoice,
		Cheque:           v.Cheque,
		Motif:            v.Motif,
	}
}

type workflowView struct {
	Step       string         `json:"step"`
	Barcode    string         `json:"codeBarre,omitempty"`
	Scanning   bool           `json:"scanning"`
	Submitting bool           `json:"submitting"`
	Draft      *parcelView    `json:"draft,omitempty"`
	Review     *reviewView    `json:"review,omitempty"`
	Items      []lineItemView `json:"items"`
}

func toWorkflowView(st colisservice.WorkflowState) workflowView {
	v := workflowView{
		Step:       string(st.Step),
		Barcode:    st.Barcode,
		Scanning:   st.Scanning,
		Submitting: st.Submitting,
		Items: lo.Map(st.Items, func(it model.EditableLineItem, _ int) lineItemView {
			return lineItemView{Key: it.Key, ProductID: it.ProductID, Quantity: it.Quantity}
		}),
	}
	if st.Draft != nil {
		d := toParcelView(st.Draft.Parcel)
		v.Draft = &d
	}
	if st.Step == colisservice.StepAwaitingReview {
		r := toReviewView(st.Review)
		v.Review = &r
	}
	return v
}

type lineItemPatchRequest struct {
	ProductID *string `json:"productId"`
	Quantity  *int64  `json:"quantity"`
}

type entryView struct {
	Open     bool   `json:"open"`
	Barcode  string `json:"codeBarre"`
	Scanning bool   `json:"scanning"`
}

func toEntryView(e *colisservice.BarcodeEntry) entryView {
	return entryView{Open: e.IsOpen(), Barcode: e.Barcode(), Scanning: e.Scanning()}
}

type parcelStatusStatsView struct {
	Status      string          `json:"statut"`
	Label       string          `json:"label"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalMontant"`
}

type parcelStatsView struct {
	TotalParcels int64                   `json:"totalColis"`
	TotalAmount  decimal.Decimal         `json:"totalMontant"`
	ByStatus     []parcelStatusStatsView `json:"parStatut"`
}

func toParcelStatsView(s model.ParcelStats) parcelStatsView {
	return parcelStatsView{
		TotalParcels: s.TotalParcels,
		TotalAmount:  s.TotalAmount,
		ByStatus: lo.Map(s.ByStatus, func(b model.ParcelStatusStats, _ int) parcelStatusStatsView {
			return parcelStatusStatsView{
				Status:      b.Status,
				Label:       model.ParcelStatus(b.Status).Label(),
				Count:       b.Count,
				TotalAmount: b.TotalAmount,
			}
		}),
	}
}

type barcodeRequest struct {
	Barcode string `json:"codeBarre"`
}

type idRequest struct {
	ID string `json:"id"`
}

type dateRangeRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
