package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ShubhamSPawade/unbound/internal/ux"
	"github.com/ShubhamSPawade/unbound/internal/version"
)

func newVersionCmd(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Long:        `Print version information including version number, git commit, build date, Go version, and platform.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{setupAnnotation: setupNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			return app.print(ux.WithText(info, func(w io.Writer, _ ux.Styles) error {
				if verbose {
					_, err := fmt.Fprintln(w, info.String())
					return err
				}
				_, err := fmt.Fprintf(w, "unbound %s\n", info.Short())
				return err
			}))
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	return cmd
}
