// Package jsonfile implements storage.Storage on top of a single JSON file.
//
// The whole registry is one JSON array, pretty-printed with four-space
// indentation. Every write replaces the file: the new content goes to a
// temp file in the same directory which is then renamed over the target,
// so readers never see a half-written array.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-registry/internal/types"
)

const indent = "    "

// Store is a file-backed record store. It holds no state besides the path;
// all coordination between callers happens in the registry.
type Store struct {
	path string
}

// New returns a Store for path, creating the parent directory if needed.
// The file itself is created lazily by Seed or the first WriteAll.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile.New: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile.New: create dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// ReadAll decodes the file. A missing file is an empty registry.
func (s *Store) ReadAll(ctx context.Context) ([]types.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make([]types.Student, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ReadAll: read %s: %w", s.path, err)
	}

	students := make([]types.Student, 0)
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("ReadAll: decode %s: %w", s.path, err)
	}
	// A file holding a literal null decodes to a nil slice.
	if students == nil {
		students = make([]types.Student, 0)
	}

	return students, nil
}

// WriteAll encodes students and atomically replaces the file.
func (s *Store) WriteAll(ctx context.Context, students []types.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(students)
	if err != nil {
		return fmt.Errorf("WriteAll: encode: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("WriteAll: %w", err)
	}
	return nil
}

// Seed writes students when the file does not exist yet.
func (s *Store) Seed(ctx context.Context, students []types.Student) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("Seed: stat %s: %w", s.path, err)
	}

	if err := s.WriteAll(ctx, students); err != nil {
		return false, err
	}
	return true, nil
}

// encode renders the array the same way every time so that reading and
// writing back an unchanged registry reproduces the file byte for byte.
func encode(students []types.Student) ([]byte, error) {
	if students == nil {
		students = make([]types.Student, 0)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(students); err != nil {
		return nil, err
	}

	// Encoder appends a newline; the file ends at the closing bracket.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".students-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
