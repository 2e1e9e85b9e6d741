// Package api assembles the versioned HTTP router for the dashboard.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"fandash/pkg/api/handlers"
	"fandash/pkg/dashboard"
	"fandash/pkg/utils"
)

// NewRouter builds the /v1 router with every dashboard route registered.
// Unknown paths and wrong methods both answer with the JSON envelope so
// clients never see a bare text error.
func NewRouter(svc *dashboard.Service) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.JSONError(w, http.StatusNotFound, utils.CodeNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.JSONError(w, http.StatusMethodNotAllowed, utils.CodeMethodNotAllowed, "method not allowed")
	})

	v1 := r.PathPrefix("/v1").Subrouter()
	handlers.RegisterConversations(v1, svc)
	handlers.RegisterAdmin(v1, svc)
	return r
}
