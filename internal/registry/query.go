package registry

import (
	"slices"
	"strings"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Apply returns the students matching f. The input is not modified.
func Apply(students []types.Student, f types.Filter) []types.Student {
	out := make([]types.Student, 0, len(students))
	if f.IsZero() {
		return append(out, students...)
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	for _, s := range students {
		if matches(s, f, q) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s types.Student, f types.Filter, q string) bool {
	if f.Gender != "" && s.Gender != f.Gender {
		return false
	}
	if f.Program != "" && s.Program != f.Program {
		return false
	}
	if f.YearLevel != "" && s.YearLevel != f.YearLevel {
		return false
	}
	if f.University != "" && s.University != f.University {
		return false
	}

	if q == "" {
		return true
	}
	for _, field := range []string{s.FullName, s.ID, s.Program, s.University} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Summarize computes totals and the distinct values used by filter menus.
func Summarize(students []types.Student) types.Stats {
	st := types.Stats{Total: len(students)}

	for _, s := range students {
		switch strings.ToLower(s.Gender) {
		case "male":
			st.Male++
		case "female":
			st.Female++
		}
	}

	st.ProgramList = distinct(students, func(s types.Student) string { return s.Program })
	st.YearLevels = distinct(students, func(s types.Student) string { return s.YearLevel })
	st.Universities = distinct(students, func(s types.Student) string { return s.University })
	st.Programs = len(st.ProgramList)

	return st
}

// distinct returns the sorted non-empty values of field.
func distinct(students []types.Student, field func(types.Student) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range students {
		v := field(s)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
