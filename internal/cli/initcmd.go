package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/ff/internal/shellsetup"
)

// parentShellDetector is replaced in tests.
var parentShellDetector = shellsetup.DetectParentShellName

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [shell]",
		Short: "Print the ffcd shell function",
		Long: heredoc.Doc(`
			Print a shell function named ffcd that runs ff and then changes the
			current shell into the directory of the selected entry. The shell is
			detected from $SHELL or the parent process unless given explicitly.
		`),
		Example: heredoc.Doc(`
			eval "$(ff init bash)"
			ff init fish | source
			ff init pwsh | Out-String | Invoke-Expression
		`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "sh", "ksh", "fish", "pwsh", "tcsh", "csh", "cmd"},
		RunE: func(cmd *cobra.Command, args []string) error {
			override := ""
			if len(args) == 1 {
				override = args[0]
			}
			shellsetup.PrintSetup(cmd.OutOrStdout(), override, shellsetup.Config{DetectParent: parentShellDetector})
			return nil
		},
	}
}
