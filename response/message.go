// Package response contains the JSON bodies written back to clients.
package response

import (
	"encoding/json"
	"net/http"
)

// Message is the body of every error response and of confirmations
// that carry no task, such as a deletion.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes v as the JSON body with the given status code.
func WriteJSON(res http.ResponseWriter, status int, v any) error {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	return json.NewEncoder(res).Encode(v)
}

// WriteMessage writes a Message body with the given status code.
func WriteMessage(res http.ResponseWriter, status int, message string) error {
	return WriteJSON(res, status, Message{Message: message})
}
