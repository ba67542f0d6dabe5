package cli

import (
	"strings"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// statusValue is a pflag.Value that only accepts the three project statuses.
type statusValue struct {
	target *domain.ProjectStatus
}

var _ pflag.Value = (*statusValue)(nil)

func (v *statusValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v *statusValue) Set(s string) error {
	st, err := domain.ParseStatus(s)
	if err != nil {
		return err
	}
	*v.target = st
	return nil
}

func (v *statusValue) Type() string { return "status" }

// statusFlag registers a status flag on fs with the given default.
func statusFlag(fs *pflag.FlagSet, target *domain.ProjectStatus, def domain.ProjectStatus) {
	*target = def
	fs.Var(&statusValue{target: target}, "status", `Project status ("Not Started", "In Progress", "Done")`)
}

// completeStatus offers the status constants for shell completion.
func completeStatus(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, st := range domain.AllStatuses {
		if strings.HasPrefix(st.Key(), strings.ToUpper(toComplete)) {
			out = append(out, st.Key())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
