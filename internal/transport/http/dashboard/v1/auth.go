package http

import (
	"net/http"

	"github.com/you-humble/colixy-dashboard/internal/model"
	authservice "github.com/you-humble/colixy-dashboard/internal/service/auth"
	"github.com/you-humble/colixy-dashboard/internal/transport/http/middleware"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

type loginResponse struct {
	User     userView `json:"user"`
	Redirect string   `json:"redirect"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := workspaceFrom(r.Context()).Auth.Login(r.Context(), model.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, loginResponse{User: toUserView(*u), Redirect: authservice.HomePath})
}

// logout always ends the workspace, even when the backend refused the call.
func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := workspaceFrom(ctx).Auth.Logout(ctx); err != nil {
		logger.Warn(ctx, "backend logout", logger.ErrorF(err))
	}
	if err := h.sessions.Drop(w, r); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"redirect": authservice.LoginPath})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	writeJSON(w, r, http.StatusOK, toUserView(*u))
}

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	u, err := workspaceFrom(r.Context()).Auth.Profile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if u == nil {
		u = &model.User{}
	}
	writeJSON(w, r, http.StatusOK, toUserView(*u))
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := workspaceFrom(r.Context()).Auth.UpdateProfile(r.Context(), model.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if u == nil {
		u = &model.User{}
	}
	writeJSON(w, r, http.StatusOK, toUserView(*u))
}

func (h *handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err := workspaceFrom(r.Context()).Auth.ChangePassword(r.Context(), model.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) layout(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	writeJSON(w, r, http.StatusOK, toLayoutView(h.nav.Layout(path)))
}
