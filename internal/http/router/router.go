// Package router assembles the route table and middleware stack.
//
// Route table:
//
//	GET    /api/students        list (optionally filtered)
//	POST   /api/students        create
//	GET    /api/students/{id}   fetch one
//	DELETE /api/students/{id}   delete
//	GET    /api/stats           aggregate counts and filter values
//	GET    /metrics             Prometheus exposition
//	GET    /                    static frontend or a liveness message
package router

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-registry/internal/http/handlers/student"
	"github.com/aanand-mishra/student-registry/internal/http/middleware"
	"github.com/aanand-mishra/student-registry/internal/metrics"
)

// RootMessage is served at / when no static directory is configured.
const RootMessage = "Student Management Backend is running!"

// Options configure New.
type Options struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	CORSOrigin string
	StaticDir  string
}

// New returns the application handler.
func New(reg student.Registry, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/students", student.New(reg))
	mux.HandleFunc("GET /api/students", student.GetList(reg))
	mux.HandleFunc("GET /api/students/{id}", student.GetByID(reg))
	mux.HandleFunc("DELETE /api/students/{id}", student.Delete(reg))
	mux.HandleFunc("GET /api/stats", student.Stats(reg))

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	if opts.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(opts.StaticDir)))
	} else {
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = io.WriteString(w, RootMessage)
		})
	}

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.CORS(origin),
	)
}
