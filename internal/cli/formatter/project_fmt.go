package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/service"
	"github.com/charmbracelet/lipgloss"
)

// ProjectTableHeaders are the columns of the desktop project table.
var ProjectTableHeaders = []string{"ID", "PROJECT", "CREATED", "OWNER", "STATUS"}

// ProjectRow renders one project as table cells matching ProjectTableHeaders.
func ProjectRow(p *domain.Project, now time.Time) []string {
	return []string{
		TruncID(p.ID),
		Bold(Truncate(p.Name, 32)),
		StyleFg.Render(HumanDateFrom(p.Created().Local(), now)),
		OwnerBadge(p),
		StatusPill(p.Status),
	}
}

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim(EmptyBacklog))
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, ProjectRow(p, now))
	}
	return RenderBox("Projects", strings.TrimRight(RenderTable(ProjectTableHeaders, rows), "\n"))
}

// EmptyBacklog is shown when there are no projects to list.
const EmptyBacklog = "No active projects yet."

// FormatProjectCard renders one project as a compact card for narrow layouts.
func FormatProjectCard(p *domain.Project, now time.Time, selected bool) string {
	// The selected card also changes border shape so it stays visible
	// without colour.
	edge, border := lipgloss.RoundedBorder(), ColorDim
	if selected {
		edge, border = lipgloss.ThickBorder(), ColorHeader
	}
	style := lipgloss.NewStyle().
		Border(edge).
		BorderForeground(border).
		Padding(0, 1)

	body := fmt.Sprintf("%s\n%s  %s\n%s  %s",
		Bold(p.Name),
		OwnerBadge(p),
		Dim(HumanDateFrom(p.Created().Local(), now)),
		StatusPill(p.Status),
		TruncID(p.ID),
	)
	return style.Render(body)
}

// BacklogCount is the counter shown next to the backlog heading: the total
// number of items, or the number of matches while a search term is set.
func BacklogCount(total, found int, searching bool) string {
	if searching {
		return fmt.Sprintf("%d found", found)
	}
	return fmt.Sprintf("%d Items", total)
}

// FormatStats renders the aggregate counts on one line with a done-ratio bar.
func FormatStats(s service.Stats) string {
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s",
		Dim("Total"), Bold(fmt.Sprint(s.Total)),
		Dim("Not Started"), StatusColor(domain.StatusNotStarted).Render(fmt.Sprint(s.NotStarted)),
		Dim("In Progress"), StatusColor(domain.StatusInProgress).Render(fmt.Sprint(s.InProgress)),
		Dim("Done"), StatusColor(domain.StatusDone).Render(fmt.Sprint(s.Done)),
		DoneBar(s.Done, s.Total, 10),
	)
}

// FormatInsights renders a model-written summary in a titled box.
func FormatInsights(text string) string {
	return RenderBox("AI Insights", strings.TrimSpace(text))
}
