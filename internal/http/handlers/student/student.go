// Package student contains all HTTP handlers related to the Student resource.
//
// Handlers are built by factory functions that receive their dependencies
// and return the http.HandlerFunc the router needs:
//
//	router.HandleFunc("POST /api/students", student.New(reg))
//
// New(reg) runs once at startup; the returned closure runs per request.
package student

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-registry/internal/registry"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

// Registry is the subset of *registry.Registry the handlers use.
type Registry interface {
	Search(ctx context.Context, f types.Filter) ([]types.Student, error)
	Get(ctx context.Context, id string) (types.Student, error)
	Create(ctx context.Context, student types.Student) (types.Student, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (types.Stats, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "id": "A1", "fullName": "X", "program": "P", "yearLevel": "1", "university": "U" }
//
// Success response (201 Created):
//
//	{ "message": "Student successfully inducted into the Registry.", "student": { ... } }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or a missing required field
//	409 Conflict     — the id is already registered
//
// ─────────────────────────────────────────────────────────────────────────────
func New(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var student types.Student
		err := json.NewDecoder(r.Body).Decode(&student)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.Message("Validation Failed: request body is empty."))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.Message(fmt.Sprintf("Validation Failed: %s.", err.Error())))
			return
		}

		created, err := reg.Create(r.Context(), student)
		if err != nil {
			writeError(w, err)
			return
		}

		slog.Info("student created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, response.Created{
			Message: response.MsgCreated,
			Student: created,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
//
// Without query parameters it returns the whole registry in insertion
// order. Optional parameters narrow the result:
//
//	q           case-insensitive substring of fullName, id, program, university
//	gender      exact match
//	program     exact match
//	yearLevel   exact match
//	university  exact match
//
// Returns an empty array [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		q := r.URL.Query()
		filter := types.Filter{
			Query:      q.Get("q"),
			Gender:     q.Get("gender"),
			Program:    q.Get("program"),
			YearLevel:  q.Get("yearLevel"),
			University: q.Get("university"),
		}

		students, err := reg.Search(r.Context(), filter)
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// GetByID handles GET /api/students/{id}.
func GetByID(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, err := reg.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "message": "Student ID A1 successfully deregistered." }
//
// Error responses:
//
//	404 Not Found — no record has that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		if err := reg.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK,
			response.Message(fmt.Sprintf("Student ID %s successfully deregistered.", id)))
	}
}

// Stats handles GET /api/stats.
func Stats(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reg.Stats(r.Context())
		if err != nil {
			slog.Error("error computing stats", slog.String("error", err.Error()))
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, stats)
	}
}

// writeError maps registry errors to status codes. Anything unrecognised
// is a storage failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, registry.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, registry.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, registry.ErrNotFound):
		status = http.StatusNotFound
	}
	response.WriteJSON(w, status, response.GeneralError(err))
}
