// Package storage defines the Storage interface — the contract every
// record store must satisfy to back the registry.
//
// The registry only ever works on the whole collection: read everything,
// change it in memory, write everything back. The interface mirrors that,
// so a flat JSON file, an embedded database and an in-memory fake are all
// interchangeable. Switching backends is a one-line change in main.go.
package storage

import (
	"context"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Storage is the record store contract.
type Storage interface {
	// ReadAll returns every persisted record in insertion order.
	// A store that has never been written returns an empty, non-nil
	// slice and no error. Unreadable or corrupt content is an error.
	ReadAll(ctx context.Context) ([]types.Student, error)

	// WriteAll replaces the persisted collection with students.
	WriteAll(ctx context.Context, students []types.Student) error
}

// Seeder is implemented by stores that can be initialised with starting
// content on first run.
type Seeder interface {
	// Seed writes students only if nothing has been persisted yet.
	// It reports whether it wrote anything.
	Seed(ctx context.Context, students []types.Student) (bool, error)
}

// DefaultSeed is written to an empty store at startup.
func DefaultSeed() []types.Student {
	return []types.Student{
		{
			ID:         "PH-101-001",
			FullName:   "Liam O'Connell",
			Gender:     "Male",
			Email:      "liam.o@university.edu",
			Program:    "BS Physics",
			YearLevel:  "4th Year",
			University: "Apex University",
		},
	}
}
