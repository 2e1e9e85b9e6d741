package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"fandash/pkg/dashboard"
	"fandash/pkg/utils"
)

// RegisterAdmin registers the admin routes to the provided router.
func RegisterAdmin(r *mux.Router, svc *dashboard.Service) {
	h := &adminHandlers{svc: svc}
	r.HandleFunc("/admin/reset", h.reset).Methods(http.MethodPost)
}

type adminHandlers struct {
	svc *dashboard.Service
}

// reset handles POST /admin/reset: restores the seed dataset and empties
// the cache.
func (h *adminHandlers) reset(w http.ResponseWriter, _ *http.Request) {
	if err := h.svc.ResetStore(); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSONSuccess(w, http.StatusOK, map[string]string{"status": "reset"}, nil)
}
