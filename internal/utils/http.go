package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/YabaiTech/YAPM/models"
)

// WriteJSON writes data as a JSON body with statusCode and returns the
// number of body bytes written. When data cannot be marshaled the client
// gets a plain 500 instead.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// WriteError writes a [models.StorageError] with the given status. code is a
// short machine-readable reason such as "not_found".
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	_, _ = WriteJSON(w, models.StorageError{
		StatusCode: strconv.Itoa(statusCode),
		Code:       code,
		Message:    message,
	}, statusCode)
}
