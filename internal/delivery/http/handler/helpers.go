package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"

	"github.com/gorilla/mux"
)

// pathID parses a positive integer route variable. It writes the 400
// response itself and reports false on failure.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// decodeAndValidate reads a JSON body into req and runs the struct tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// isBadInput reports the usecase errors every resource answers with 400.
func isBadInput(err error) bool {
	switch err {
	case usecase.ErrEmptyUpdate, usecase.ErrInvalidDateFormat, usecase.ErrInvalidReference, usecase.ErrNegativeQuantity:
		return true
	}
	return false
}
