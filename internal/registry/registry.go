// Package registry implements the student registry rules on top of a
// storage.Storage: required-field validation, id uniqueness, and
// delete-by-id, plus the search and statistics views.
//
// Every call is read-all → validate/mutate → write-all. A mutex serialises
// those sequences so two concurrent creates cannot overwrite each other.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-registry/internal/metrics"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	store    storage.Storage
	validate *validator.Validate
	log      *slog.Logger
	metrics  *metrics.Metrics

	// strict surfaces storage errors instead of degrading.
	strict bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for degraded I/O. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithMetrics records operation outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithStrictIO makes read and write failures errors. Without it a failed
// read is treated as an empty registry and a failed write is only logged.
func WithStrictIO(strict bool) Option {
	return func(r *Registry) { r.strict = strict }
}

// New returns a Registry backed by store.
func New(store storage.Storage, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		validate: newValidator(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newValidator reports fields by their JSON names so messages read
// "fullName" rather than "FullName".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// List returns every record in insertion order.
func (r *Registry) List(ctx context.Context) ([]types.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.load(ctx, "list")
	if err != nil {
		return nil, err
	}
	r.done("list", metrics.ResultOK, len(students))
	return students, nil
}

// Search returns the records matching f, in insertion order.
func (r *Registry) Search(ctx context.Context, f types.Filter) ([]types.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.load(ctx, "search")
	if err != nil {
		return nil, err
	}
	r.done("search", metrics.ResultOK, len(students))
	return Apply(students, f), nil
}

// Get returns the record with id.
func (r *Registry) Get(ctx context.Context, id string) (types.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.load(ctx, "get")
	if err != nil {
		return types.Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			r.done("get", metrics.ResultOK, len(students))
			return s, nil
		}
	}
	r.done("get", metrics.ResultNotFound, len(students))
	return types.Student{}, &NotFoundError{ID: id}
}

// Create validates student, checks its id is unused, appends it and
// persists the registry. On a validation or conflict error nothing is
// written.
func (r *Registry) Create(ctx context.Context, student types.Student) (types.Student, error) {
	if err := r.check(student); err != nil {
		r.metrics.Observe("create", metrics.ResultInvalid)
		return types.Student{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.load(ctx, "create")
	if err != nil {
		return types.Student{}, err
	}

	for _, s := range students {
		if s.ID == student.ID {
			r.done("create", metrics.ResultConflict, len(students))
			return types.Student{}, &ConflictError{ID: student.ID}
		}
	}

	students = append(students, student)
	if err := r.persist(ctx, "create", students); err != nil {
		return types.Student{}, err
	}
	r.done("create", metrics.ResultOK, len(students))
	return student, nil
}

// Delete removes every record with id. If none matched it returns a
// NotFoundError and leaves storage untouched.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.load(ctx, "delete")
	if err != nil {
		return err
	}

	kept := make([]types.Student, 0, len(students))
	for _, s := range students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}

	if len(kept) == len(students) {
		r.done("delete", metrics.ResultNotFound, len(students))
		return &NotFoundError{ID: id}
	}

	if err := r.persist(ctx, "delete", kept); err != nil {
		return err
	}
	r.done("delete", metrics.ResultOK, len(kept))
	return nil
}

// Stats aggregates the current registry.
func (r *Registry) Stats(ctx context.Context) (types.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.load(ctx, "stats")
	if err != nil {
		return types.Stats{}, err
	}
	r.done("stats", metrics.ResultOK, len(students))
	return Summarize(students), nil
}

// check returns a ValidationError for the first missing required field.
func (r *Registry) check(student types.Student) error {
	err := r.validate.Struct(student)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field()}
	}
	return err
}

func (r *Registry) load(ctx context.Context, op string) ([]types.Student, error) {
	students, err := r.store.ReadAll(ctx)
	if err == nil {
		return students, nil
	}

	if r.strict {
		r.metrics.Observe(op, metrics.ResultError)
		return nil, err
	}

	r.log.Error("error reading student data, continuing with empty registry",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	r.metrics.Observe(op, metrics.ResultIODegraded)
	return make([]types.Student, 0), nil
}

func (r *Registry) persist(ctx context.Context, op string, students []types.Student) error {
	err := r.store.WriteAll(ctx, students)
	if err == nil {
		return nil
	}

	if r.strict {
		r.metrics.Observe(op, metrics.ResultError)
		return err
	}

	r.log.Error("error writing student data",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	r.metrics.Observe(op, metrics.ResultIODegraded)
	return nil
}

func (r *Registry) done(op, result string, size int) {
	r.metrics.Observe(op, result)
	r.metrics.SetStudents(size)
}
