package middleware

import (
	"context"
	"net/http"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

type userCtxKey struct{}

// CurrentFunc resolves the operator behind a request context.
type CurrentFunc func(ctx context.Context) (*model.User, error)

// DenyFunc writes the rejection for an unauthenticated request.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// RequireAuth lets a request through only when current yields an operator.
// The operator is stored in the request context.
func RequireAuth(current CurrentFunc, deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			u, err := current(ctx)
			if err != nil {
				logger.Debug(ctx, "request denied",
					logger.String("path", r.URL.Path),
					logger.ErrorF(err),
				)
				deny(w, r, err)
				return
			}

			ctx = context.WithValue(ctx, userCtxKey{}, u)
			if u.ID != "" {
				ctx = logger.ContextWithFields(ctx, logger.String("operator_id", u.ID))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFrom(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*model.User)
	return u, ok && u != nil
}
