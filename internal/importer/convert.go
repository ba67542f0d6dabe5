package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/domain"
)

// ProjectAdder is the slice of the tracker an import needs.
type ProjectAdder interface {
	Add(ctx context.Context, name, owner string, status domain.ProjectStatus) (*domain.Project, error)
}

// Apply adds every project in the schema. Add prepends, so entries are added
// bottom-up and the first entry in the file ends up on top of the backlog.
// Call ValidateImportSchema first; Apply stops at the first failed add and
// returns how many projects were added before it.
func Apply(ctx context.Context, tracker ProjectAdder, schema *ImportSchema) (int, error) {
	added := 0
	for i := len(schema.Projects) - 1; i >= 0; i-- {
		entry := schema.Projects[i]

		status := domain.StatusNotStarted
		if entry.Status != "" {
			parsed, err := domain.ParseStatus(entry.Status)
			if err != nil {
				return added, fmt.Errorf("projects[%d].status: %w", i, err)
			}
			status = parsed
		}

		p, err := tracker.Add(ctx, strings.TrimSpace(entry.Name), strings.TrimSpace(entry.Owner), status)
		if err != nil {
			return added, fmt.Errorf("projects[%d]: %w", i, err)
		}
		if p == nil {
			return added, fmt.Errorf("projects[%d]: name and owner are required", i)
		}
		added++
	}
	return added, nil
}
