package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type errorKind struct {
	code  string
	title string
}

var errorKinds = map[int]errorKind{
	http.StatusNotFound:            {code: "NOT_FOUND", title: "Not Found"},
	http.StatusMethodNotAllowed:    {code: "METHOD_NOT_ALLOWED", title: "Method Not Allowed"},
	http.StatusServiceUnavailable:  {code: "SERVICE_UNAVAILABLE", title: "Service Unavailable"},
	http.StatusInternalServerError: {code: "INTERNAL_ERROR", title: "Internal Server Error"},
}

// respondWithError writes the errors envelope. Statuses without an entry in
// errorKinds are reported as internal errors.
func respondWithError(w http.ResponseWriter, status int, detail string) {
	kind, ok := errorKinds[status]
	if !ok {
		kind = errorKinds[http.StatusInternalServerError]
	}

	if status == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", http.MethodPost)
	}

	respondWithJSON(w, status, ErrorResponse{
		Errors: []Error{{
			Code:   kind.code,
			Detail: detail,
			Status: status,
			Title:  kind.title,
		}},
	})
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}
