package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finmate-app/finmate/internal/common"
)

// detailBody is the error shape of every failure response.
type detailBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailBody{Detail: detail})
}

// writeError maps a service error to an HTTP status with a {detail} body.
// The detail is the error text with the sentinel prefix stripped, so
// clients see "username already registered" rather than the full chain.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorConflict):
		status = http.StatusConflict
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInactiveUser):
		status = http.StatusUnauthorized
	}

	writeDetail(w, status, errDetail(err))
}

func errDetail(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
