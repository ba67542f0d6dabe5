package cli

import (
	"bytes"
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/intelligence"
	"github.com/alexanderramin/teamflow/internal/repository"
	"github.com/alexanderramin/teamflow/internal/service"
	"github.com/alexanderramin/teamflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// stubGateway records gateway calls and returns canned texts. When release
// is set, calls block until it is closed.
type stubGateway struct {
	mu sync.Mutex

	insightsText string
	previewText  string
	release      chan struct{}

	insightsCalls int
	previewCalls  int
	lastInsights  []*domain.Project
	lastPreview   []string
}

var _ intelligence.Gateway = (*stubGateway)(nil)

func (g *stubGateway) ProjectInsights(_ context.Context, projects []*domain.Project) string {
	g.mu.Lock()
	g.insightsCalls++
	g.lastInsights = projects
	release, text := g.release, g.insightsText
	g.mu.Unlock()

	if release != nil {
		<-release
	}
	if len(projects) == 0 {
		return intelligence.InsightsEmptyCollection
	}
	return text
}

func (g *stubGateway) ProjectPreview(_ context.Context, name, owner string, status domain.ProjectStatus) string {
	g.mu.Lock()
	g.previewCalls++
	g.lastPreview = []string{name, owner, string(status)}
	release, text := g.release, g.previewText
	g.mu.Unlock()

	if release != nil {
		<-release
	}
	return text
}

func (g *stubGateway) calls() (insights, preview int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.insightsCalls, g.previewCalls
}

// blockCalls makes gateway calls hang until the test ends.
func (g *stubGateway) blockCalls(t *testing.T) {
	t.Helper()
	g.mu.Lock()
	g.release = make(chan struct{})
	release := g.release
	g.mu.Unlock()
	t.Cleanup(func() { close(release) })
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	return testAppWithKV(t, repository.NewSQLiteKVStore(testutil.NewTestDB(t)))
}

// testAppWithKV builds an App whose collection persists through kv.
func testAppWithKV(t *testing.T, kv repository.KVStore) *App {
	t.Helper()
	store := repository.NewKVProjectStore(kv)
	projects, err := service.NewCollection(context.Background(), store)
	require.NoError(t, err)

	return &App{
		Projects: projects,
		AI: &stubGateway{
			insightsText: "Two projects are moving; nothing is blocked.",
			previewText:  "- Kick off\n- Map stakeholders\n- Ship a draft",
		},
		Now: func() time.Time { return testNow },
	}
}

func gatewayOf(app *App) *stubGateway {
	return app.AI.(*stubGateway)
}

// seedProjects adds "Design Audit" (Jane Doe) then "Website Redesign" (Sam),
// so the collection reads newest-first: Website Redesign, Design Audit.
func seedProjects(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()
	_, err := app.Projects.Add(ctx, "Design Audit", "Jane Doe", domain.StatusNotStarted)
	require.NoError(t, err)
	_, err = app.Projects.Add(ctx, "Website Redesign", "Sam", domain.StatusInProgress)
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{}, args...))
	err := root.Execute()
	return buf.String(), err
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// --- Root command ---

func TestRootCmd_NonInteractiveListsEmptyBacklog(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "No active projects yet.")
}

func TestRootCmd_NonInteractiveListsProjects(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "Design Audit")
	assert.Contains(t, output, "Website Redesign")
	assert.Less(t, bytes.Index([]byte(output), []byte("Website Redesign")), bytes.Index([]byte(output), []byte("Design Audit")))
}

func TestRootCmd_RejectsUnknownCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

// --- project add ---

func TestProjectAdd_DefaultsToNotStarted(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "project", "add", "--name", "Design Audit", "--owner", "Jane Doe")
	require.NoError(t, err)
	assert.Contains(t, output, "Added")
	assert.Contains(t, output, "Design Audit")

	projects := app.Projects.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Design Audit", projects[0].Name)
	assert.Equal(t, "Jane Doe", projects[0].Owner)
	assert.Equal(t, domain.StatusNotStarted, projects[0].Status)
	assert.NotEmpty(t, projects[0].ID)
}

func TestProjectAdd_StatusFlag(t *testing.T) {
	tests := []struct {
		flag string
		want domain.ProjectStatus
	}{
		{"In Progress", domain.StatusInProgress},
		{"in_progress", domain.StatusInProgress},
		{"DONE", domain.StatusDone},
		{"not-started", domain.StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			app := testApp(t)

			_, err := executeCmd(t, app, "project", "add", "--name", "P", "--owner", "O", "--status", tt.flag)
			require.NoError(t, err)
			require.Len(t, app.Projects.Projects(), 1)
			assert.Equal(t, tt.want, app.Projects.Projects()[0].Status)
		})
	}
}

func TestProjectAdd_InvalidStatusRejected(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "P", "--owner", "O", "--status", "blocked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project status")
	assert.Empty(t, app.Projects.Projects())
}

func TestProjectAdd_BlankFieldsAddNothing(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing owner", []string{"--name", "Design Audit"}},
		{"missing name", []string{"--owner", "Jane Doe"}},
		{"whitespace name", []string{"--name", "   ", "--owner", "Jane Doe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)

			_, err := executeCmd(t, app, append([]string{"project", "add"}, tt.args...)...)
			require.ErrorIs(t, err, errNameOwnerRequired)
			assert.Empty(t, app.Projects.Projects())
		})
	}
}

// --- project list ---

func TestProjectList_Search(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	output, err := executeCmd(t, app, "project", "list", "--search", "sam")
	require.NoError(t, err)
	assert.Contains(t, output, "1 found")
	assert.Contains(t, output, "Website Redesign")
	assert.NotContains(t, output, "Design Audit")
}

func TestProjectList_SearchWithoutMatches(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	output, err := executeCmd(t, app, "project", "ls", "-s", "zzz")
	require.NoError(t, err)
	assert.Contains(t, output, `No projects match "zzz".`)
}

// --- project status ---

func TestProjectStatus_AdvancesWhenOmitted(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)
	audit := app.Projects.Projects()[1]

	output, err := executeCmd(t, app, "project", "status", audit.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Design Audit")

	got, ok := app.Projects.Get(audit.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, audit.Name, got.Name)
	assert.Equal(t, audit.CreatedAt, got.CreatedAt)
}

func TestProjectStatus_ExplicitStatusByPrefix(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)
	site := app.Projects.Projects()[0]

	_, err := executeCmd(t, app, "project", "status", site.ID[:8], "done")
	require.NoError(t, err)

	got, _ := app.Projects.Get(site.ID)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestProjectStatus_Errors(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)
	site := app.Projects.Projects()[0]

	_, err := executeCmd(t, app, "project", "status", "no-such-id")
	require.ErrorIs(t, err, service.ErrProjectNotFound)

	_, err = executeCmd(t, app, "project", "status", site.ID, "paused")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	got, _ := app.Projects.Get(site.ID)
	assert.Equal(t, domain.StatusInProgress, got.Status)
}

// --- project remove ---

func TestProjectRemove(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)
	site := app.Projects.Projects()[0]

	output, err := executeCmd(t, app, "project", "rm", site.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Removed")
	assert.Contains(t, output, "Website Redesign")

	projects := app.Projects.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Design Audit", projects[0].Name)

	_, err = executeCmd(t, app, "project", "remove", site.ID)
	require.ErrorIs(t, err, service.ErrProjectNotFound)
}

// --- project clear ---

func TestProjectClear_RequiresYesWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	_, err := executeCmd(t, app, "project", "clear")
	require.ErrorIs(t, err, errClearNeedsYes)
	assert.Len(t, app.Projects.Projects(), 2)
}

func TestProjectClear(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	output, err := executeCmd(t, app, "project", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stripANSI(output), "Cleared 2 projects")
	assert.Empty(t, app.Projects.Projects())

	output, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, stripANSI(output), "No active projects yet.")
}

// --- stats / insights / preview ---

func TestStatsCmd(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	output, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	plain := stripANSI(output)
	assert.Contains(t, plain, "Total 2")
	assert.Contains(t, plain, "Not Started 1")
	assert.Contains(t, plain, "In Progress 1")
	assert.Contains(t, plain, "Done 0")
}

func TestInsightsCmd(t *testing.T) {
	app := testApp(t)
	seedProjects(t, app)

	output, err := executeCmd(t, app, "insights")
	require.NoError(t, err)
	assert.Contains(t, output, "AI INSIGHTS")
	assert.Contains(t, output, "nothing is blocked")

	gw := gatewayOf(app)
	insights, _ := gw.calls()
	assert.Equal(t, 1, insights)
	require.Len(t, gw.lastInsights, 2)
	assert.Equal(t, "Website Redesign", gw.lastInsights[0].Name)
}

func TestInsightsCmd_EmptyCollection(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "insights")
	require.NoError(t, err)
	assert.Contains(t, output, intelligence.InsightsEmptyCollection)
}

func TestPreviewCmd(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "preview", "--name", "Design Audit", "--owner", "Jane Doe", "--status", "done")
	require.NoError(t, err)
	assert.Contains(t, output, "AI PREVIEW")
	assert.Contains(t, output, "Map stakeholders")

	gw := gatewayOf(app)
	assert.Equal(t, []string{"Design Audit", "Jane Doe", "Done"}, gw.lastPreview)
	assert.Empty(t, app.Projects.Projects(), "preview must not add the project")
}

func TestPreviewCmd_RequiresNameAndOwner(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "preview", "--name", "Design Audit")
	require.ErrorIs(t, err, errNameOwnerRequired)

	_, preview := gatewayOf(app).calls()
	assert.Zero(t, preview)
}

// --- command-bar capture ---

func TestCaptureCobraOutput_NeverStartsTUI(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	seedProjects(t, app)

	out := captureCobraOutput(app, nil)
	assert.Contains(t, out, "Website Redesign")
}

func TestCaptureCobraOutput_AddSkipsPrompt(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	out := captureCobraOutput(app, []string{"project", "add", "--name", "Alpha"})
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "--name and --owner are required")
	assert.Empty(t, app.Projects.Projects())
}

func TestCaptureCobraOutput_SuggestsNearMiss(t *testing.T) {
	app := testApp(t)

	out := captureCobraOutput(app, []string{"projct"})
	assert.Contains(t, out, "unknown command")
	assert.Contains(t, out, "Did you mean:")
	assert.Contains(t, out, "project")
}
