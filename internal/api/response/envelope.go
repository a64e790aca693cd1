package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform wire format for every API response. Success is
// derived from the status code, never set directly.
type Envelope struct {
	Status   int    `json:"status"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Data     any    `json:"data,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// New builds an envelope for the given status
func New(status int, message string) Envelope {
	return Envelope{
		Status:  status,
		Success: status >= 200 && status < 300,
		Message: message,
	}
}

// Write sends an envelope with no data payload
func Write(w http.ResponseWriter, status int, message string) {
	send(w, New(status, message))
}

// WriteData sends an envelope carrying a data payload
func WriteData(w http.ResponseWriter, status int, message string, data any) {
	e := New(status, message)
	e.Data = data
	send(w, e)
}

// WriteFull sends an envelope carrying data and metadata
func WriteFull(w http.ResponseWriter, status int, message string, data, metadata any) {
	e := New(status, message)
	e.Data = data
	e.Metadata = metadata
	send(w, e)
}

func send(w http.ResponseWriter, e Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}
