// Package http carries the REST handlers. Handlers stay thin: decode,
// delegate to a service, translate the error kind to a status code.
package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the error taxonomy onto HTTP statuses. Unknown errors are
// logged and reported as a plain 500 without leaking internals.
func writeErr(w http.ResponseWriter, err error) {
	var status int
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindRoleViolation:
		status = http.StatusForbidden
	case errs.KindDuplicate:
		status = http.StatusConflict
	case errs.KindValidation, errs.KindBusinessRule:
		status = http.StatusUnprocessableEntity
	default:
		log.Printf("http: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decode parses the JSON body into dst and runs the struct validation tags.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validationf("bad json: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return errs.Validationf("%v", err)
	}
	return nil
}
