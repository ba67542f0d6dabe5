package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/domain"
)

// Fixed texts returned instead of model output.
const (
	InsightsEmptyCollection = "Add some projects to get AI insights!"
	InsightsEmptyResponse   = "Unable to generate insights at this time."
	InsightsError           = "Error connecting to AI assistant."

	PreviewEmptyResponse = "Start by defining clear objectives and success metrics."
	PreviewError         = "Define your key performance indicators and first major milestone."
)

const insightsPromptTemplate = `As an expert project manager, analyze the following project list and provide a 2-3 sentence summary of current progress, identifying any potential bottlenecks or successes.

Current Projects:
%s`

const previewPromptTemplate = `I am about to add a new project to my tracker.
Project Name: %s
Owner: %s
Initial Status: %s

Provide 3 brief, high-impact bullet points of suggestions or potential milestones for this specific project.
Focus on the %s status. Keep it professional and under 60 words total.`

// projectSummary renders one bullet line per project in collection order.
func projectSummary(projects []*domain.Project) string {
	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("- %s (Owner: %s, Status: %s)", p.Name, p.Owner, p.Status))
	}
	return strings.Join(lines, "\n")
}

func buildInsightsPrompt(projects []*domain.Project) string {
	return fmt.Sprintf(insightsPromptTemplate, projectSummary(projects))
}

func buildPreviewPrompt(name, owner string, status domain.ProjectStatus) string {
	return fmt.Sprintf(previewPromptTemplate, name, owner, status, status)
}
