package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/importer"
	"github.com/spf13/cobra"
)

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add projects from a JSON or YAML file",
		Long: `Add every project listed in FILE. The first entry ends up at the top of
the backlog. Files ending in .yaml or .yml are read as YAML, anything else as JSON.

  projects:
    - name: Design Audit
      owner: Jane Doe
      status: In Progress`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}

			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				msgs := make([]string, 0, len(errs))
				for _, e := range errs {
					msgs = append(msgs, "  - "+e.Error())
				}
				return errors.New("import file is invalid:\n" + strings.Join(msgs, "\n"))
			}

			n, err := importer.Apply(cmd.Context(), app.Projects, schema)
			if err != nil {
				return fmt.Errorf("imported %d of %d projects: %w", n, len(schema.Projects), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(pluralProjects(n)))
			return nil
		},
	}
}

func newProjectExportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every project as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importer.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := importer.Export(app.Projects.Projects()).Encode(f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(importer.FormatJSON), "Output format (json or yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func pluralProjects(n int) string {
	if n == 1 {
		return "1 project"
	}
	return fmt.Sprintf("%d projects", n)
}
