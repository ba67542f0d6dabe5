package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	if len(schema.Projects) == 0 {
		return []error{fmt.Errorf("projects: at least one project is required")}
	}

	var errs []error
	for i, p := range schema.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)

		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if strings.TrimSpace(p.Owner) == "" {
			errs = append(errs, fmt.Errorf("%s.owner is required", prefix))
		}
		if p.Status != "" {
			if _, err := domain.ParseStatus(p.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
			}
		}
	}
	return errs
}
