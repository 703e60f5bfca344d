package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
)

// getServerVersion answers with the plain version string, or with
// {"version": "..."} when the caller only accepts JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/plain") {
		if _, err := utils.WriteJSON(w, map[string]string{"version": version}, http.StatusOK); err != nil {
			logger.FromRequest(r).Err(err).Msg("cannot write version")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	if _, err := io.WriteString(w, version); err != nil {
		logger.FromRequest(r).Err(err).Msg("cannot write version")
	}
}
