package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

func (h *handler) productCategories(w http.ResponseWriter, r *http.Request) {
	cats := workspaceFrom(r.Context()).Products.Categories()
	writeJSON(w, r, http.StatusOK, lo.Map(cats, func(c model.Category, _ int) categoryView {
		return toCategoryView(c)
	}))
}

func (h *handler) transactionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toTransactionStatsView(workspaceFrom(r.Context()).Transactions.Stats()))
}

func (h *handler) user(w http.ResponseWriter, r *http.Request) {
	u, err := workspaceFrom(r.Context()).Users.User(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUserView(*u))
}
