package http

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "failed to encode response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.ErrorF(err))
	}
	writeJSON(w, r, status, errorDTO{Code: status, Message: err.Error()})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, model.ErrRecordNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, model.ErrSyncInProgress):
		return http.StatusConflict // 409
	case errors.Is(err, model.ErrRateLimited):
		return http.StatusTooManyRequests // 429
	case errors.Is(err, model.ErrDownloadFailed):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
