package api

import "net/http"

type rootResponse struct {
	Message string `json:"message"`
}

func (h *handler) root(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, rootResponse{
		Message: "This is the " + h.name + " service",
	})
}
