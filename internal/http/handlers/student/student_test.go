package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registry/internal/registry"
	"github.com/aanand-mishra/student-registry/internal/storage/memory"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

var _ Registry = (*registry.Registry)(nil)

func newRegistry(t *testing.T, seed ...types.Student) (*registry.Registry, *memory.Store) {
	t.Helper()
	store := memory.New(seed...)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return registry.New(store, registry.WithLogger(log)), store
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Message
}

func TestNew_Created(t *testing.T) {
	reg, _ := newRegistry(t)

	body := `{"id":"A1","fullName":"X","gender":"Male","program":"P","yearLevel":"1","university":"U"}`
	rec := httptest.NewRecorder()
	New(reg)(rec, httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got response.Created
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, response.MsgCreated, got.Message)
	assert.Equal(t, types.Student{
		ID: "A1", FullName: "X", Gender: "Male", Program: "P", YearLevel: "1", University: "U",
	}, got.Student)
}

func TestNew_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "Validation Failed: request body is empty."},
		{"missing program", `{"id":"A1","fullName":"X","yearLevel":"1","university":"U"}`,
			"Validation Failed: Missing required field: program."},
		{"empty string counts as missing", `{"id":"","fullName":"X"}`,
			"Validation Failed: Missing required field: id."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, store := newRegistry(t)
			rec := httptest.NewRecorder()
			New(reg)(rec, httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeMessage(t, rec))
			assert.Zero(t, store.Writes)
		})
	}
}

func TestNew_MalformedJSON(t *testing.T) {
	reg, _ := newRegistry(t)
	rec := httptest.NewRecorder()
	New(reg)(rec, httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(`{"id":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(decodeMessage(t, rec), "Validation Failed:"))
}

func TestNew_Conflict(t *testing.T) {
	reg, _ := newRegistry(t, types.Student{ID: "A1", FullName: "X", Program: "P", YearLevel: "1", University: "U"})

	body := `{"id":"A1","fullName":"Y","program":"P","yearLevel":"1","university":"U"}`
	rec := httptest.NewRecorder()
	New(reg)(rec, httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Conflict: Student ID A1 already exists in the registry.", decodeMessage(t, rec))
}

func TestGetList_Filters(t *testing.T) {
	reg, _ := newRegistry(t,
		types.Student{ID: "A1", FullName: "Amy", Gender: "Female", Program: "Math", YearLevel: "1", University: "U"},
		types.Student{ID: "B2", FullName: "Ben", Gender: "Male", Program: "Physics", YearLevel: "2", University: "U"},
	)

	rec := httptest.NewRecorder()
	GetList(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/students?q=BEN", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "B2", got[0].ID)

	rec = httptest.NewRecorder()
	GetList(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/students?gender=Other", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

// failingRegistry returns err from every method.
type failingRegistry struct{ err error }

func (f failingRegistry) Search(context.Context, types.Filter) ([]types.Student, error) {
	return nil, f.err
}
func (f failingRegistry) Get(context.Context, string) (types.Student, error) {
	return types.Student{}, f.err
}
func (f failingRegistry) Create(context.Context, types.Student) (types.Student, error) {
	return types.Student{}, f.err
}
func (f failingRegistry) Delete(context.Context, string) error { return f.err }
func (f failingRegistry) Stats(context.Context) (types.Stats, error) {
	return types.Stats{}, f.err
}

func TestStorageErrorIs500(t *testing.T) {
	reg := failingRegistry{err: errors.New("ReadAll: read data/students.json: permission denied")}

	rec := httptest.NewRecorder()
	GetList(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/students", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	Stats(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStats(t *testing.T) {
	reg, _ := newRegistry(t,
		types.Student{ID: "A1", FullName: "Amy", Gender: "female", Program: "Math", YearLevel: "1", University: "U"},
		types.Student{ID: "B2", FullName: "Ben", Gender: "Male", Program: "Math", YearLevel: "2", University: "V"},
	)

	rec := httptest.NewRecorder()
	Stats(reg)(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, types.Stats{
		Total:        2,
		Male:         1,
		Female:       1,
		Programs:     1,
		ProgramList:  []string{"Math"},
		YearLevels:   []string{"1", "2"},
		Universities: []string{"U", "V"},
	}, got)
}
