package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/neurohealth/internal/clinic/service"
	"github.com/aussiebroadwan/neurohealth/pkg/clinicsdk"
	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
	"github.com/aussiebroadwan/neurohealth/pkg/idx"
	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

// writeError answers business rule violations with 400 and the message as
// plain text. Everything else is a 500 and is logged.
func writeError(w http.ResponseWriter, r *http.Request, err error, description string) {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrValidation) {
		httpx.WriteText(w, http.StatusBadRequest, err.Error())
		return
	}

	slogx.FromContext(r.Context()).Error(description, slog.Any("error", err))
	httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
		Error:            clinicsdk.ErrorCodeServerError,
		ErrorDescription: description,
	})
}

// writeLookupError is writeError for single-resource reads, where a missing
// resource is a 404.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error, description string) {
	if errors.Is(err, service.ErrNotFound) {
		httpx.WriteText(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, r, err, description)
}

// pathID returns the {id} path value and whether it is a well-formed id.
// Malformed ids cannot exist in the store.
func pathID(r *http.Request) (string, bool) {
	raw := r.PathValue("id")
	id, err := idx.Parse(raw)
	if err != nil {
		return raw, false
	}
	return id.String(), true
}
