package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

const (
	maxMultipartMemory = 8 << 20
	maxUploadBody      = 64 << 20
)

// entityRoutes serves one list page with its form. T is the record, V the form
// values, TV and VV their JSON shapes.
type entityRoutes[T, V, TV, VV any] struct {
	service func(ws *Workspace) EntityService[T, V]
	item    func(T) TV
	values  func(V) VV
	decode  func(r *http.Request) (V, error)
}

func (e entityRoutes[T, V, TV, VV]) mount(r chi.Router) {
	r.Get("/", e.list)
	r.Patch("/filters", e.setFilter)
	r.Post("/filters/reset", e.resetFilters)
	r.Post("/form", e.openForm)
	r.Put("/form", e.submitForm)
	r.Delete("/form", e.cancelForm)
	r.Delete("/{id}", e.delete)
}

func (e entityRoutes[T, V, TV, VV]) page(r *http.Request) pageView[TV, VV] {
	svc := e.service(workspaceFrom(r.Context()))
	return pageView[TV, VV]{
		List: toListView(svc.List(), e.item),
		Form: toFormView(svc.Form(), e.values),
	}
}

func (e entityRoutes[T, V, TV, VV]) respond(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, e.page(r))
}

// list is the page mount: it always reads the backend again.
func (e entityRoutes[T, V, TV, VV]) list(w http.ResponseWriter, r *http.Request) {
	e.respond(w, r, e.service(workspaceFrom(r.Context())).Refresh(r.Context()))
}

func (e entityRoutes[T, V, TV, VV]) setFilter(w http.ResponseWriter, r *http.Request) {
	var patch model.Filter
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	e.respond(w, r, e.service(workspaceFrom(r.Context())).SetFilter(r.Context(), patch))
}

func (e entityRoutes[T, V, TV, VV]) resetFilters(w http.ResponseWriter, r *http.Request) {
	e.respond(w, r, e.service(workspaceFrom(r.Context())).ResetFilters(r.Context()))
}

// openForm opens the create form, or the edit form when an id is given.
func (e entityRoutes[T, V, TV, VV]) openForm(w http.ResponseWriter, r *http.Request) {
	req := idRequest{ID: r.URL.Query().Get("id")}
	if req.ID == "" {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	_, err := e.service(workspaceFrom(r.Context())).OpenForm(r.Context(), req.ID)
	e.respond(w, r, err)
}

func (e entityRoutes[T, V, TV, VV]) submitForm(w http.ResponseWriter, r *http.Request) {
	in, err := e.decode(r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	e.respond(w, r, e.service(workspaceFrom(r.Context())).SubmitForm(r.Context(), in))
}

func (e entityRoutes[T, V, TV, VV]) cancelForm(w http.ResponseWriter, r *http.Request) {
	e.service(workspaceFrom(r.Context())).CancelForm()
	e.respond(w, r, nil)
}

func (e entityRoutes[T, V, TV, VV]) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e.respond(w, r, e.service(workspaceFrom(r.Context())).Delete(r.Context(), id))
}

// decodeInto builds a decoder for a JSON form body.
func decodeInto[VV interface{ model() V }, V any]() func(r *http.Request) (V, error) {
	return func(r *http.Request) (V, error) {
		var in VV
		if err := decodeJSON(r, &in); err != nil {
			var zero V
			return zero, err
		}
		return in.model(), nil
	}
}

var (
	categoryRoutes = entityRoutes[model.Category, model.CategoryInput, categoryView, categoryInputView]{
		service: func(ws *Workspace) EntityService[model.Category, model.CategoryInput] { return ws.Categories },
		item:    toCategoryView,
		values:  toCategoryInputView,
		decode:  decodeInto[categoryInputView, model.CategoryInput](),
	}

	productRoutes = entityRoutes[model.Product, model.ProductInput, productView, productInputView]{
		service: func(ws *Workspace) EntityService[model.Product, model.ProductInput] { return ws.Products },
		item:    toProductView,
		values:  toProductInputView,
		decode:  decodeProduct,
	}

	transactionRoutes = entityRoutes[model.StockTransaction, model.TransactionInput, transactionView, transactionInputView]{
		service: func(ws *Workspace) EntityService[model.StockTransaction, model.TransactionInput] {
			return ws.Transactions
		},
		item:   toTransactionView,
		values: toTransactionInputView,
		decode: decodeInto[transactionInputView, model.TransactionInput](),
	}

	userRoutes = entityRoutes[model.User, model.UserInput, userView, userInputView]{
		service: func(ws *Workspace) EntityService[model.User, model.UserInput] { return ws.Users },
		item:    toUserView,
		values:  toUserInputView,
		decode:  decodeInto[userInputView, model.UserInput](),
	}
)

// decodeProduct accepts JSON, or multipart with the form fields and an
// optional "image" file part.
func decodeProduct(r *http.Request) (model.ProductInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return decodeInto[productInputView, model.ProductInput]()(r)
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return model.ProductInput{}, fmt.Errorf("%w: multipart: %s", errBadRequest, err.Error())
	}

	in := model.ProductInput{
		Name:         r.FormValue("name"),
		CategoryName: r.FormValue("category"),
		Description:  r.FormValue("description"),
		ImageURL:     r.FormValue("imageUrl"),
	}

	var err error
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		if in.Price, err = decimal.NewFromString(raw); err != nil {
			return model.ProductInput{}, fmt.Errorf("%w: price: %s", errBadRequest, err.Error())
		}
	}
	if raw := strings.TrimSpace(r.FormValue("stockQuantity")); raw != "" {
		if in.StockQuantity, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return model.ProductInput{}, fmt.Errorf("%w: stockQuantity: %s", errBadRequest, err.Error())
		}
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return model.ProductInput{}, fmt.Errorf("%w: image: %s", errBadRequest, err.Error())
	}
	defer file.Close()

	img := &model.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	// Oversized files are rejected by validation; only buffer what may be uploaded.
	if header.Size < model.MaxImageSize {
		body, err := io.ReadAll(file)
		if err != nil {
			return model.ProductInput{}, fmt.Errorf("%w: image: %s", errBadRequest, err.Error())
		}
		img.Body = bytes.NewReader(body)
	}
	in.Image = img

	return in, nil
}
