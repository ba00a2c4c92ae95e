package api

import (
	"net/http"

	"github.com/appifylab/dhakacelsius/internal/models"
)

// helloQuery is the /hello request schema. Location is optional and falls
// back to the configured default when absent.
type helloQuery struct {
	Location string `json:"location" validate:"omitempty,min=2,max=64"`
}

func (h *handler) hello(w http.ResponseWriter, r *http.Request) {
	query := helloQuery{Location: r.URL.Query().Get("location")}
	if err := models.Validate(query); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	data, err := h.weather.GetHelloData(r.Context(), query.Location)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	jsonResponse(w, http.StatusOK, data)
}

// helloLookup is the body-based variant of /hello for clients that send
// the location as a JSON payload instead of a query parameter.
func (h *handler) helloLookup(w http.ResponseWriter, r *http.Request) {
	query, err := parseRequest[helloQuery](w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := models.Validate(*query); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	data, err := h.weather.GetHelloData(r.Context(), query.Location)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	jsonResponse(w, http.StatusOK, data)
}
