package api

import (
	"net/http"

	"github.com/appifylab/dhakacelsius/internal/models"
)

// health reports the service health document. The HTTP status is always
// 200; the body's status_code carries the health state.
func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	doc := h.weather.CheckHealth(r.Context())

	if err := models.Validate(doc); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	jsonResponse(w, http.StatusOK, doc)
}
