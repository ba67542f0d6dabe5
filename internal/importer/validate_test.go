package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() *ImportSchema {
	return &ImportSchema{
		Projects: []ProjectImport{
			{Name: "Design Audit", Owner: "Jane Doe"},
			{Name: "Website Redesign", Owner: "Sam", Status: "In Progress"},
			{Name: "Launch Plan", Owner: "Ana", Status: "DONE"},
		},
	}
}

func TestValidateImportSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validSchema()))
}

func TestValidateImportSchema_Empty(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one project")
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	schema := &ImportSchema{
		Projects: []ProjectImport{
			{Name: "  ", Owner: "Jane"},
			{Name: "Ok", Owner: ""},
			{Name: "Ok", Owner: "Sam", Status: "Blocked"},
		},
	}

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "projects[0].name is required")
	assert.Contains(t, errs[1].Error(), "projects[1].owner is required")
	assert.Contains(t, errs[2].Error(), "projects[2].status")
	assert.Contains(t, errs[2].Error(), "Blocked")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" yml ", FormatYAML, false},
		{"toml", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("backlog.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("/tmp/Backlog.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("backlog.json"))
	assert.Equal(t, FormatJSON, FormatForPath("backlog"))
}
