package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ShubhamSPawade/unbound/internal/config"
	"github.com/ShubhamSPawade/unbound/internal/ux"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
		Long: `Inspect and create the configuration file.

Settings are resolved in this order, later sources winning:
  1. built-in defaults
  2. ~/.unbound/config.yaml (or --config)
  3. .env in the working directory
  4. UNBOUND_* environment variables (NEXT_PUBLIC_API_URL is honored
     when UNBOUND_API_URL is unset)
  5. command-line flags`,
		Annotations: map[string]string{setupAnnotation: setupConfig},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := app.Config
				return app.print(ux.WithText(cfg, func(w io.Writer, _ ux.Styles) error {
					data, err := yaml.Marshal(cfg)
					if err != nil {
						return err
					}
					_, err = w.Write(data)
					return err
				}))
			},
		},
		&cobra.Command{
			Use:         "path",
			Short:       "Print the configuration file path",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{setupAnnotation: setupNone},
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.print(app.configPath())
			},
		},
		newConfigInitCmd(app),
	)
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Long: `Write a configuration file with the defaults. Flags such as --api-url
and --storage are applied before writing.

Examples:
  unbound config init
  unbound config init --api-url https://unbound.example.edu/api --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{setupAnnotation: setupNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			app.applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := app.configPath()
			if err := cfg.Save(path, force); err != nil {
				return err
			}
			app.notice("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *App) configPath() string {
	if a.opts.configFile != "" {
		return a.opts.configFile
	}
	return config.DefaultFile()
}
