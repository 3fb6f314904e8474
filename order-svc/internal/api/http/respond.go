package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chatchat-order/order-svc/internal/domain"
)

const (
	allowOrigin  = "*"
	allowMethods = "GET, POST, PATCH, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
)

func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}

// writeJSON encodes v before committing the status, so a value that cannot be
// encoded becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	setCORS(w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps err onto the error taxonomy. Upstream details are only exposed
// when DebugErrors is set.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid status")
	case errors.Is(err, domain.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, domain.ErrNotConfigured):
		log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusInternalServerError, cfgErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
		if h.DebugErrors {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
