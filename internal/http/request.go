package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quizforge/quizforge/pkg/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeValid decodes the JSON request body into T and runs struct
// validation. On failure it writes a 400 and returns false; handlers just
// return.
func decodeValid[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var payload T

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_body",
			"request body is not valid JSON")
		return payload, false
	}

	if err := validate.Struct(payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
		return payload, false
	}

	return payload, true
}
