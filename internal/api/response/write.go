package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON body with the given status. All three
// authorities' handlers return their room, game, and identity views through
// this writer; a nil data writes the status alone.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
