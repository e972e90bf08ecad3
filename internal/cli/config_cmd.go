package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil {
				return errors.New("no configuration loaded")
			}
			redacted := *app.Config
			if redacted.Handoff.SMTP.Pass != "" {
				redacted.Handoff.SMTP.Pass = "********"
			}
			if redacted.Store.RedisPassword != "" {
				redacted.Store.RedisPassword = "********"
			}
			out, err := yaml.Marshal(redacted)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("# "+app.ConfigPath))
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			dir, err := config.Home()
			if err != nil {
				return err
			}
			if err := config.Save(config.Default(dir), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
