package handler

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var dateParamRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validate checks write payloads against their struct tags before anything
// touches the store.
var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// dateParam extracts and validates the {date} path value.
func dateParam(r *http.Request) (string, bool) {
	date := r.PathValue("date")
	return date, dateParamRegexp.MatchString(date)
}

func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
