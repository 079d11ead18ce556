package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vedran77/devlink/pkg/validator"
)

const serverErrorMsg = "Server Error"

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMsg emits the API's `{msg}` error body.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeValidationErrors emits the `{errors:[{msg,param}]}` body used by all
// field-validation failures.
func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func writeServerError(w http.ResponseWriter) {
	writeMsg(w, http.StatusInternalServerError, serverErrorMsg)
}
