package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/scanner"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const maxJSONBody = 1 << 20

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error(r.Context(), "encode response", logger.ErrorF(err))
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Debug(r.Context(), "write response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
	}
	writeJSON(w, r, status, resp)
}

func mapError(err error) (int, errorResponse) {
	var vErr *model.ValidationError

	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity, errorResponse{Error: model.ErrValidation.Error(), Details: vErr.Violations}
	case errors.Is(err, model.ErrImageTooLarge):
		return http.StatusUnprocessableEntity, errorResponse{Error: model.ErrImageTooLarge.Error()}
	case errors.Is(err, model.ErrInvalidImage):
		return http.StatusUnprocessableEntity, errorResponse{Error: model.ErrInvalidImage.Error()}
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: unauthorizedMessage(err)}
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrLineItemNotFound):
		return http.StatusNotFound, errorResponse{Error: model.UserMessage(err)}
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrScanInProgress),
		errors.Is(err, model.ErrFormClosed),
		errors.Is(err, scanner.ErrStopped):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, model.ErrRequestFailed):
		return http.StatusBadGateway, errorResponse{Error: model.UserMessage(err)}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal error"}
	}
}

func unauthorizedMessage(err error) string {
	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return model.ErrUnauthorized.Error()
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid json: %s", errBadRequest, err.Error())
	}
	return nil
}
