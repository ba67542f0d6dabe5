package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/teamflow/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of an import or export file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
}

// FormatForPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ImportSchema is the top-level structure of a bulk project file. Projects
// are listed top to bottom in the order they should appear in the backlog.
type ImportSchema struct {
	Projects []ProjectImport `json:"projects" yaml:"projects"`
}

// ProjectImport defines one project entry. Status is optional and defaults
// to Not Started.
type ProjectImport struct {
	Name   string `json:"name" yaml:"name"`
	Owner  string `json:"owner" yaml:"owner"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// LoadImportSchema reads and parses a project import file, choosing the
// decoder from the file extension.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes data in the given format.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &schema)
	default:
		err = json.Unmarshal(data, &schema)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// Export builds a schema from projects in backlog order, so that importing
// it into an empty tracker reproduces the same order.
func Export(projects []*domain.Project) *ImportSchema {
	schema := &ImportSchema{Projects: make([]ProjectImport, 0, len(projects))}
	for _, p := range projects {
		schema.Projects = append(schema.Projects, ProjectImport{
			Name:   p.Name,
			Owner:  p.Owner,
			Status: p.Status.String(),
		})
	}
	return schema
}

// Encode renders the schema in the given format.
func (s *ImportSchema) Encode(format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(s)
	}
	return json.MarshalIndent(s, "", "  ")
}
