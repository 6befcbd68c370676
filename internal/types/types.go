// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and the registry can all import types without
// depending on each other.
package types

// Student represents one record in the registry.
//
// Every field is a caller-supplied string; nothing is generated by the
// server. The field order matters: validator reports failures in
// declaration order, so the first reported error is the first missing
// field in the order id, fullName, program, yearLevel, university.
//
// Optional fields carry omitempty so a record created without them is
// persisted (and returned) without them.
type Student struct {
	ID         string `json:"id"               validate:"required"`
	FullName   string `json:"fullName"         validate:"required"`
	Gender     string `json:"gender,omitempty"`
	Email      string `json:"email,omitempty"`
	Program    string `json:"program"          validate:"required"`
	YearLevel  string `json:"yearLevel"        validate:"required"`
	University string `json:"university"       validate:"required"`
}

// Filter narrows a listing. Empty fields do not filter.
//
// Gender, Program, YearLevel and University must match exactly. Query is
// matched case-insensitively as a substring of the full name, id, program
// or university.
type Filter struct {
	Query      string
	Gender     string
	Program    string
	YearLevel  string
	University string
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Stats is the aggregate view served by GET /api/stats.
type Stats struct {
	Total        int      `json:"total"`
	Male         int      `json:"male"`
	Female       int      `json:"female"`
	Programs     int      `json:"programs"`
	ProgramList  []string `json:"programList"`
	YearLevels   []string `json:"yearLevels"`
	Universities []string `json:"universities"`
}
