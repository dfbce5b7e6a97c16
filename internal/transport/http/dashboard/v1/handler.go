package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/transport/http/middleware"
)

type SessionManager interface {
	Resolve(w http.ResponseWriter, r *http.Request) (*Workspace, error)
	Drop(w http.ResponseWriter, r *http.Request) error
}

type NavService interface {
	Layout(path string) model.Layout
}

type workspaceCtxKey struct{}

type handler struct {
	sessions SessionManager
	nav      NavService
}

func NewDashboardHandler(sessions SessionManager, nav NavService) *handler {
	return &handler{sessions: sessions, nav: nav}
}

// Routes is the JSON surface. Everything but login sits behind the auth gate.
func (h *handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.withWorkspace)

	r.Post("/auth/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(currentOperator, writeError))

		r.Post("/auth/logout", h.logout)
		r.Get("/auth/me", h.me)
		r.Get("/auth/profile", h.profile)
		r.Put("/auth/profile", h.updateProfile)
		r.Put("/auth/password", h.changePassword)
		r.Get("/layout", h.layout)

		r.Route("/categories", categoryRoutes.mount)
		r.Route("/products", func(r chi.Router) {
			productRoutes.mount(r)
			r.Get("/categories", h.productCategories)
		})
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/stats", h.transactionStats)
			transactionRoutes.mount(r)
		})
		r.Route("/users", func(r chi.Router) {
			userRoutes.mount(r)
			r.Get("/{id}", h.user)
		})

		r.Route("/colis", h.parcelRoutes)
		r.Route("/returns", h.returnRoutes)
	})

	return r
}

func (h *handler) withWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := h.sessions.Resolve(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), workspaceCtxKey{}, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func workspaceFrom(ctx context.Context) *Workspace {
	ws, _ := ctx.Value(workspaceCtxKey{}).(*Workspace)
	return ws
}

func currentOperator(ctx context.Context) (*model.User, error) {
	return workspaceFrom(ctx).Auth.Current(ctx)
}
