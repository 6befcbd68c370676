package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/student-registry/internal/types"
)

var roster = []types.Student{
	{ID: "PH-101-001", FullName: "Liam O'Connell", Gender: "Male", Program: "BS Physics", YearLevel: "4th Year", University: "Apex University"},
	{ID: "CS-201-014", FullName: "Maya Lin", Gender: "Female", Program: "BS Computer Science", YearLevel: "2nd Year", University: "Apex University"},
	{ID: "CS-201-020", FullName: "Ravi Patel", Gender: "male", Program: "BS Computer Science", YearLevel: "1st Year", University: "North College"},
	{ID: "BIO-5", FullName: "Ana Cruz", Program: "BS Biology", YearLevel: "2nd Year", University: "North College"},
}

func ids(students []types.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter types.Filter
		want   []string
	}{
		{"zero filter", types.Filter{}, []string{"PH-101-001", "CS-201-014", "CS-201-020", "BIO-5"}},
		{"query matches name case-insensitively", types.Filter{Query: "  maya "}, []string{"CS-201-014"}},
		{"query matches id", types.Filter{Query: "cs-201"}, []string{"CS-201-014", "CS-201-020"}},
		{"query matches university", types.Filter{Query: "north"}, []string{"CS-201-020", "BIO-5"}},
		{"query ignores email and year", types.Filter{Query: "year"}, []string{}},
		{"gender is exact", types.Filter{Gender: "Male"}, []string{"PH-101-001"}},
		{"program and year combined", types.Filter{Program: "BS Computer Science", YearLevel: "2nd Year"}, []string{"CS-201-014"}},
		{"filter and query", types.Filter{University: "North College", Query: "ana"}, []string{"BIO-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(roster, tt.filter)))
		})
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize(roster)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.Male)
	assert.Equal(t, 1, st.Female)
	assert.Equal(t, 3, st.Programs)
	assert.Equal(t, []string{"BS Biology", "BS Computer Science", "BS Physics"}, st.ProgramList)
	assert.Equal(t, []string{"1st Year", "2nd Year", "4th Year"}, st.YearLevels)
	assert.Equal(t, []string{"Apex University", "North College"}, st.Universities)
}

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)

	assert.Zero(t, st.Total)
	assert.NotNil(t, st.ProgramList)
	assert.Empty(t, st.ProgramList)
}
