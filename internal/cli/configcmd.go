package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/ff/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the ff configuration file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigShowCommand(), newConfigPathCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		format string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Example: heredoc.Doc(`
			ff config init
			ff config init --format toml
			ff config init ./ff-config.json --force
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = config.DefaultPath(format); err != nil {
					return fmt.Errorf("locate config dir: %w", err)
				}
			}
			if err := config.Write(path, format, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "file format: json, yaml or toml")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			s, used, err := config.Load(config.New(configPath))
			if err != nil {
				return err
			}
			if used == "" {
				used = "(defaults)"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", used)
			return config.Encode(cmd.OutOrStdout(), s, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: json, yaml or toml")
	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use, or where one would be created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			used, err := config.Read(config.New(configPath))
			if err != nil {
				return err
			}
			if used == "" {
				if used, err = config.DefaultPath("json"); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), used)
			return nil
		},
	}
}
