// Package cli wires the ff command line onto the search core.
package cli

import (
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type searchFlags struct {
	configPath    string
	path          string
	hidden        bool
	filesOnly     bool
	dirsOnly      bool
	matchMode     string
	caseSensitive bool
	limit         int
	noIgnore      bool
	noFollow      bool
	details       bool
	color         string

	parallel bool
	threads  int
	maxCPU   bool

	copy        bool
	terminal    bool
	edit        bool
	interactive bool
	cdFile      string

	verbose bool
	quiet   bool
}

// shortFlagNames keeps the terse spellings of the performance flags working.
var shortFlagNames = map[string]string{
	"pl": "parallel",
	"th": "threads",
	"mx": "max-cpu",
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if long, ok := shortFlagNames[name]; ok {
		name = long
	}
	return pflag.NormalizedName(name)
}

// NewRootCommand builds the ff command tree.
func NewRootCommand(streams Streams) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "ff [pattern]",
		Short: "Fast File - locate files and directories by name",
		Long: heredoc.Doc(`
			ff walks a directory tree and ranks every entry whose name matches the
			pattern. Fuzzy mode (the default) accepts any ordered subsequence of the
			name; exact mode accepts the whole name, with * and ? wildcards.

			Settings are read from ff-config.{json,yaml,toml} in the working
			directory or the user config directory, then from FF_* environment
			variables, then from flags.

			To search for a name that is also a subcommand, put it after --.
		`),
		Example: heredoc.Doc(`
			ff main --path ~/code        Search for 'main' in ~/code
			ff package --copy            Copy the selected path to the clipboard
			ff "*.rs" --files-only -m exact
			ff notes -d -t               Open a terminal in the chosen directory
			ff -- config                 Search for entries named like 'config'
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printWelcome(cmd.OutOrStdout())
				return nil
			}
			return runSearch(cmd, streams, f, args[0])
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalizeFlagName)
	fs.SortFlags = false

	fs.StringVarP(&f.path, "path", "p", "", "directory to search in (default: current directory)")
	fs.BoolVarP(&f.hidden, "hidden", "H", false, "include hidden files and directories")
	fs.BoolVarP(&f.filesOnly, "files-only", "f", false, "only match files")
	fs.BoolVarP(&f.dirsOnly, "dirs-only", "d", false, "only match directories")
	fs.StringVarP(&f.matchMode, "match-mode", "m", "fuzzy", "matching mode: fuzzy or exact")
	fs.BoolVar(&f.caseSensitive, "case-sensitive", false, "match letter case exactly")
	fs.IntVarP(&f.limit, "limit", "l", 10, "maximum number of results")
	fs.BoolVar(&f.noIgnore, "no-ignore", false, "do not skip the configured ignore patterns")
	fs.BoolVar(&f.noFollow, "no-follow", false, "do not descend into symlinked directories")

	fs.BoolVar(&f.details, "details", false, "show file sizes and modification times")
	fs.StringVar(&f.color, "color", "auto", "colour output: auto, always or never")

	fs.BoolVar(&f.parallel, "parallel", false, "search subtrees in parallel (also --pl)")
	fs.IntVar(&f.threads, "threads", 0, "number of worker threads, implies --parallel (also --th)")
	fs.BoolVar(&f.maxCPU, "max-cpu", false, "use twice the CPU count as workers, implies --parallel (also --mx)")

	fs.BoolVarP(&f.copy, "copy", "c", false, "copy the selected path to the clipboard")
	fs.BoolVarP(&f.terminal, "terminal", "t", false, "open a new terminal in the selected entry's directory")
	fs.BoolVarP(&f.edit, "edit", "e", false, "open the selected file in $VISUAL or $EDITOR")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "choose from a full-screen list")
	fs.StringVar(&f.cdFile, "cd-file", "", "write the selected directory to this file (used by ffcd)")
	_ = fs.MarkHidden("cd-file")

	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug information to stderr")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print only result paths")
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "read settings from this file only")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newConfigCommand(), newInitCommand())
	return cmd
}
