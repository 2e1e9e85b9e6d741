package handlers

import (
	"errors"
	"net/http"

	"fandash/pkg/dashboard"
	"fandash/pkg/logger"
	"fandash/pkg/utils"
)

// writeServiceError maps service errors onto envelope responses. Unknown
// errors become a 500 with a generic message; the detail goes to the log.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, utils.CodeNotFound, err.Error())
	case errors.Is(err, dashboard.ErrValidation):
		utils.JSONError(w, http.StatusBadRequest, utils.CodeBadRequest, err.Error())
	default:
		logger.Error("handler_internal_error", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, utils.CodeInternal, "internal error")
	}
}
