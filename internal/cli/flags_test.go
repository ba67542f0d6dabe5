package cli

import (
	"testing"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var status domain.ProjectStatus
	statusFlag(fs, &status, domain.StatusNotStarted)

	assert.Equal(t, domain.StatusNotStarted, status)
	assert.Equal(t, "status", fs.Lookup("status").Value.Type())
	assert.Equal(t, "Not Started", fs.Lookup("status").DefValue)

	require.NoError(t, fs.Parse([]string{"--status", "IN_PROGRESS"}))
	assert.Equal(t, domain.StatusInProgress, status)
	assert.Equal(t, "In Progress", fs.Lookup("status").Value.String())

	err := fs.Parse([]string{"--status", "archived"})
	require.Error(t, err)
	assert.Equal(t, domain.StatusInProgress, status, "failed parse keeps the previous value")
}

func TestCompleteStatus(t *testing.T) {
	got, directive := completeStatus(&cobra.Command{}, nil, "in")
	assert.Equal(t, []string{"IN_PROGRESS"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	all, _ := completeStatus(&cobra.Command{}, nil, "")
	assert.Equal(t, []string{"NOT_STARTED", "IN_PROGRESS", "DONE"}, all)
}

func TestRequireNonBlank(t *testing.T) {
	validate := requireNonBlank("Project name")

	assert.NoError(t, validate("Design Audit"))
	assert.EqualError(t, validate(""), "Project name is required")
	assert.EqualError(t, validate(" \t"), "Project name is required")
}

func TestWizardAddProject_DefaultsStatus(t *testing.T) {
	var name, owner string
	var status domain.ProjectStatus

	form := wizardAddProject(&name, &owner, &status)
	require.NotNil(t, form)
	assert.Equal(t, domain.StatusNotStarted, status)

	status = domain.StatusDone
	wizardAddProject(&name, &owner, &status)
	assert.Equal(t, domain.StatusDone, status, "a valid preset status is kept")
}

func TestStatusOptions_WorkflowOrder(t *testing.T) {
	opts := statusOptions()
	require.Len(t, opts, 3)
	for i, st := range domain.AllStatuses {
		assert.Equal(t, st, opts[i].Value)
		assert.Equal(t, string(st), opts[i].Key)
	}
}
