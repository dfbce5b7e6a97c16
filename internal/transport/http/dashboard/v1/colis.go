package http

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/colixy-dashboard/internal/model"
	colisservice "github.com/you-humble/colixy-dashboard/internal/service/colis"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const maxFrameBytes = 8 << 20

func (h *handler) parcelRoutes(r chi.Router) {
	r.Get("/", h.parcels)
	r.Patch("/filters", h.setParcelFilter)
	r.Put("/filters/date-range", h.setParcelDateRange)
	r.Post("/filters/reset", h.resetParcelFilters)
	r.Patch("/refresh-pending", h.refreshPending)
	r.Get("/stats", h.parcelStats)
	r.Delete("/{id}", h.deleteParcel)

	r.Route("/workflow", func(r chi.Router) {
		r.Get("/", h.workflowState)
		r.Post("/", h.beginWorkflow)
		r.Delete("/", h.cancelWorkflow)
		r.Put("/barcode", h.setWorkflowBarcode)
		r.Post("/scan", h.startScan(workflowEntry))
		r.Post("/scan/frames", h.pushFrame(workflowEntry))
		r.Delete("/scan", h.stopScan(workflowEntry))
		r.Post("/submit", h.submitBarcode)
		r.Put("/review", h.updateReview)
		r.Post("/items", h.addItem)
		r.Patch("/items/{key}", h.updateItem)
		r.Delete("/items/{key}", h.removeItem)
		r.Post("/confirm", h.confirmParcel)
	})
}

func (h *handler) returnRoutes(r chi.Router) {
	r.Get("/", h.returns)
	r.Patch("/filters", h.setReturnFilter)
	r.Post("/filters/reset", h.resetReturnFilters)
	r.Get("/stats", h.returnStats)
	r.Post("/mark", h.markReturned)
	r.Delete("/{id}", h.deleteReturn)

	r.Route("/entry", func(r chi.Router) {
		r.Get("/", h.returnEntry)
		r.Post("/", h.openReturnEntry)
		r.Delete("/", h.cancelReturnEntry)
		r.Put("/barcode", h.setReturnBarcode)
		r.Post("/scan", h.startScan(returnEntry))
		r.Post("/scan/frames", h.pushFrame(returnEntry))
		r.Delete("/scan", h.stopScan(returnEntry))
	})
}

func workflowEntry(ws *Workspace) *colisservice.BarcodeEntry { return ws.Parcels.Workflow().Entry() }
func returnEntry(ws *Workspace) *colisservice.BarcodeEntry   { return ws.Returns.Entry() }

// ======= Parcel list =======

func (h *handler) respondParcels(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toListView(workspaceFrom(r.Context()).Parcels.List(), toParcelView))
}

func (h *handler) parcels(w http.ResponseWriter, r *http.Request) {
	h.respondParcels(w, r, workspaceFrom(r.Context()).Parcels.Refresh(r.Context()))
}

func (h *handler) setParcelFilter(w http.ResponseWriter, r *http.Request) {
	var patch model.Filter
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondParcels(w, r, workspaceFrom(r.Context()).Parcels.SetFilter(r.Context(), patch))
}

func (h *handler) setParcelDateRange(w http.ResponseWriter, r *http.Request) {
	var req dateRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondParcels(w, r, workspaceFrom(r.Context()).Parcels.SetDateRange(r.Context(), req.From, req.To))
}

func (h *handler) resetParcelFilters(w http.ResponseWriter, r *http.Request) {
	h.respondParcels(w, r, workspaceFrom(r.Context()).Parcels.ResetFilters(r.Context()))
}

func (h *handler) refreshPending(w http.ResponseWriter, r *http.Request) {
	h.respondParcels(w, r, workspaceFrom(r.Context()).Parcels.RefreshPending(r.Context()))
}

func (h *handler) deleteParcel(w http.ResponseWriter, r *http.Request) {
	h.respondParcels(w, r, workspaceFrom(r.Context()).Parcels.Delete(r.Context(), chi.URLParam(r, "id")))
}

func (h *handler) parcelStats(w http.ResponseWriter, r *http.Request) {
	stats, err := workspaceFrom(r.Context()).Parcels.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toParcelStatsView(stats))
}

// ======= Workflow =======

func (h *handler) respondWorkflow(w http.ResponseWriter, r *http.Request, st colisservice.WorkflowState, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkflowView(st))
}

func workflowOf(r *http.Request) *colisservice.Workflow {
	return workspaceFrom(r.Context()).Parcels.Workflow()
}

func (h *handler) workflowState(w http.ResponseWriter, r *http.Request) {
	h.respondWorkflow(w, r, workflowOf(r).State(), nil)
}

func (h *handler) beginWorkflow(w http.ResponseWriter, r *http.Request) {
	st, err := workflowOf(r).Begin()
	h.respondWorkflow(w, r, st, err)
}

func (h *handler) cancelWorkflow(w http.ResponseWriter, r *http.Request) {
	wf := workflowOf(r)
	wf.Cancel()
	h.respondWorkflow(w, r, wf.State(), nil)
}

func (h *handler) setWorkflowBarcode(w http.ResponseWriter, r *http.Request) {
	var req barcodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	wf := workflowOf(r)
	err := wf.SetBarcode(req.Barcode)
	h.respondWorkflow(w, r, wf.State(), err)
}

func (h *handler) submitBarcode(w http.ResponseWriter, r *http.Request) {
	st, err := workflowOf(r).SubmitBarcode(r.Context())
	h.respondWorkflow(w, r, st, err)
}

func (h *handler) updateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewView
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	st, err := workflowOf(r).UpdateReview(req.model())
	h.respondWorkflow(w, r, st, err)
}

func (h *handler) addItem(w http.ResponseWriter, r *http.Request) {
	wf := workflowOf(r)
	_, err := wf.AddItem()
	h.respondWorkflow(w, r, wf.State(), err)
}

func (h *handler) updateItem(w http.ResponseWriter, r *http.Request) {
	key, err := itemKey(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req lineItemPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	wf := workflowOf(r)
	_, err = wf.UpdateItem(key, colisservice.LineItemPatch{ProductID: req.ProductID, Quantity: req.Quantity})
	h.respondWorkflow(w, r, wf.State(), err)
}

func (h *handler) removeItem(w http.ResponseWriter, r *http.Request) {
	key, err := itemKey(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	wf := workflowOf(r)
	err = wf.RemoveItem(key)
	h.respondWorkflow(w, r, wf.State(), err)
}

type confirmResponse struct {
	Parcel   *parcelView  `json:"parcel,omitempty"`
	Workflow workflowView `json:"workflow"`
	// RefreshError is set when the parcel was saved but the list refetch failed.
	RefreshError string `json:"refreshError,omitempty"`
}

func (h *handler) confirmParcel(w http.ResponseWriter, r *http.Request) {
	wf := workflowOf(r)

	saved, err := wf.Confirm(r.Context())
	if err != nil && !errors.Is(err, model.ErrRefreshAfterSave) {
		writeError(w, r, err)
		return
	}

	resp := confirmResponse{Workflow: toWorkflowView(wf.State())}
	if saved != nil {
		v := toParcelView(*saved)
		resp.Parcel = &v
	}
	if err != nil {
		resp.RefreshError = refreshFailed(r, err)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func itemKey(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "key")
	key, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line item key %q", errBadRequest, raw)
	}
	return key, nil
}

// ======= Barcode scanning =======

type entryFunc func(ws *Workspace) *colisservice.BarcodeEntry

func (h *handler) startScan(entry entryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e := entry(workspaceFrom(r.Context()))
		if err := e.StartScan(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusAccepted, toEntryView(e))
	}
}

// pushFrame takes one PNG or JPEG camera frame as the request body.
func (h *handler) pushFrame(entry entryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, _, err := image.Decode(io.LimitReader(r.Body, maxFrameBytes))
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: frame: %s", errBadRequest, err.Error()))
			return
		}

		e := entry(workspaceFrom(r.Context()))
		if err := e.PushFrame(img); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusAccepted, toEntryView(e))
	}
}

func (h *handler) stopScan(entry entryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e := entry(workspaceFrom(r.Context()))
		e.StopScan()
		writeJSON(w, r, http.StatusOK, toEntryView(e))
	}
}

// ======= Returns =======

func (h *handler) respondReturns(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toListView(workspaceFrom(r.Context()).Returns.List(), toParcelView))
}

func (h *handler) returns(w http.ResponseWriter, r *http.Request) {
	h.respondReturns(w, r, workspaceFrom(r.Context()).Returns.Refresh(r.Context()))
}

func (h *handler) setReturnFilter(w http.ResponseWriter, r *http.Request) {
	var patch model.Filter
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondReturns(w, r, workspaceFrom(r.Context()).Returns.SetFilter(r.Context(), patch))
}

func (h *handler) resetReturnFilters(w http.ResponseWriter, r *http.Request) {
	h.respondReturns(w, r, workspaceFrom(r.Context()).Returns.ResetFilters(r.Context()))
}

func (h *handler) deleteReturn(w http.ResponseWriter, r *http.Request) {
	h.respondReturns(w, r, workspaceFrom(r.Context()).Returns.Delete(r.Context(), chi.URLParam(r, "id")))
}

func (h *handler) returnStats(w http.ResponseWriter, r *http.Request) {
	stats, err := workspaceFrom(r.Context()).Returns.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toParcelStatsView(stats))
}

type markResponse struct {
	Parcel       *parcelView          `json:"parcel,omitempty"`
	List         listView[parcelView] `json:"list"`
	RefreshError string               `json:"refreshError,omitempty"`
}

func (h *handler) markReturned(w http.ResponseWriter, r *http.Request) {
	var req barcodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	svc := workspaceFrom(r.Context()).Returns
	p, err := svc.MarkReturned(r.Context(), req.Barcode)
	if err != nil && !errors.Is(err, model.ErrRefreshAfterSave) {
		writeError(w, r, err)
		return
	}

	resp := markResponse{List: toListView(svc.List(), toParcelView)}
	if p != nil {
		v := toParcelView(*p)
		resp.Parcel = &v
	}
	if err != nil {
		resp.RefreshError = refreshFailed(r, err)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// refreshFailed reports a refetch error that followed a committed mutation.
func refreshFailed(r *http.Request, err error) string {
	logger.Warn(r.Context(), "refresh after mutation",
		logger.String("path", r.URL.Path),
		logger.ErrorF(err),
	)
	return model.UserMessage(err)
}

func (h *handler) returnEntry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toEntryView(workspaceFrom(r.Context()).Returns.Entry()))
}

func (h *handler) openReturnEntry(w http.ResponseWriter, r *http.Request) {
	svc := workspaceFrom(r.Context()).Returns
	svc.OpenMark()
	writeJSON(w, r, http.StatusOK, toEntryView(svc.Entry()))
}

func (h *handler) cancelReturnEntry(w http.ResponseWriter, r *http.Request) {
	svc := workspaceFrom(r.Context()).Returns
	svc.CancelMark()
	writeJSON(w, r, http.StatusOK, toEntryView(svc.Entry()))
}

func (h *handler) setReturnBarcode(w http.ResponseWriter, r *http.Request) {
	var req barcodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e := workspaceFrom(r.Context()).Returns.Entry()
	if err := e.SetBarcode(req.Barcode); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toEntryView(e))
}
