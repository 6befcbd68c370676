// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Error and status replies share one shape:
//
//	{ "message": "Error: Student ID A1 not found in the Registry." }
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Response is the envelope for messages and errors.
type Response struct {
	Message string `json:"message"`
}

// Created is the body of a successful POST /api/students.
type Created struct {
	Message string        `json:"message"`
	Student types.Student `json:"student"`
}

// MsgCreated is sent with every successful create.
const MsgCreated = "Student successfully inducted into the Registry."

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message wraps a human-readable string.
func Message(msg string) Response {
	return Response{Message: msg}
}

// GeneralError wraps any Go error into the standard shape.
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError(err))
func GeneralError(err error) Response {
	return Response{Message: err.Error()}
}
