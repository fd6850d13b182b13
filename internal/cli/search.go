package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kk-code-lab/ff/internal/actions"
	"github.com/kk-code-lab/ff/internal/config"
	"github.com/kk-code-lab/ff/internal/logger"
	"github.com/kk-code-lab/ff/internal/output"
	"github.com/kk-code-lab/ff/internal/picker"
	"github.com/kk-code-lab/ff/internal/search"
	"github.com/kk-code-lab/ff/internal/shellsetup"
)

// ErrEmptyPattern is returned for a pattern made only of whitespace.
var ErrEmptyPattern = errors.New("search pattern cannot be empty")

// Hooks replaced in tests.
var (
	copyPath     = actions.CopyPath
	openTerminal = actions.OpenTerminal
	openEditor   = actions.OpenInEditor
	openScreen   = func() (tcell.Screen, error) {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := s.Init(); err != nil {
			return nil, err
		}
		return s, nil
	}
)

// flagKeys binds command-line flags onto config keys so that an explicit
// flag overrides the file and environment.
var flagKeys = map[string]string{
	"hidden":         config.KeyIncludeHidden,
	"match-mode":     config.KeyMatchMode,
	"case-sensitive": config.KeyCaseSensitive,
	"details":        config.KeyShowDetails,
	"color":          config.KeyColor,
}

func loadSettings(cmd *cobra.Command, configPath string) (config.Settings, string, error) {
	v := config.New(configPath)
	if err := bindFlags(v, cmd); err != nil {
		return config.Settings{}, "", err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func runSearch(cmd *cobra.Command, streams Streams, f *searchFlags, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return ErrEmptyPattern
	}

	settings, used, err := loadSettings(cmd, f.configPath)
	if err != nil {
		return err
	}

	useColor := colorEnabled(settings.OutputOptions.Color, streams.Out)
	log := logger.New(streams.Err, logLevel(f))
	log.SetColor(colorEnabled(settings.OutputOptions.Color, streams.Err))
	if used != "" {
		log.Debugf("using config %s", used)
	}

	cfg, err := searchConfig(cmd, f, settings)
	if err != nil {
		return err
	}
	q, err := settings.Query(pattern)
	if err != nil {
		return err
	}

	printer := output.NewPrinter(streams.Out, output.Options{
		Details: settings.OutputOptions.ShowDetails,
		Color:   useColor,
		Width:   terminalWidth(streams.Out),
	})

	opts := []search.Option{search.WithLogger(log)}
	showProgress := !f.quiet && isTerminal(streams.Out)
	if showProgress {
		opts = append(opts, search.WithProgress(printer.Progress))
	}
	if !f.quiet {
		printer.Header(cfg.Root, q)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rs, report, err := search.Search(ctx, cfg, q, opts...)
	if showProgress {
		printer.ClearProgress()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	for _, terr := range report.TraversalErrors {
		log.Debugf("skipped: %v", terr)
	}

	if f.quiet {
		for _, m := range rs {
			printer.Selected(m.Path)
		}
	} else {
		printer.Results(rs)
		printer.Summary(report)
	}
	if len(rs) == 0 || report.Cancelled {
		return nil
	}

	if !f.wantsSelection() {
		if !f.quiet {
			printer.Completed(report)
			printer.ActionHint(len(rs))
		}
		return nil
	}

	selected, err := choose(streams, f, rs, pattern, useColor)
	if errors.Is(err, picker.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return act(printer, f, selected)
}

func (f *searchFlags) wantsSelection() bool {
	return f.copy || f.terminal || f.edit || f.interactive || f.cdFile != ""
}

func searchConfig(cmd *cobra.Command, f *searchFlags, s config.Settings) (search.Config, error) {
	root := f.path
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return search.Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	cfg := s.SearchConfig(root)
	cfg.FilesOnly = f.filesOnly
	cfg.DirsOnly = f.dirsOnly
	if cmd.Flags().Changed("limit") {
		cfg.Limit = f.limit
	}
	if f.noIgnore {
		cfg.Ignore = search.IgnoreRules{}
	}
	if f.noFollow {
		cfg.FollowSymlinks = false
	}

	threadsSet := cmd.Flags().Changed("threads")
	cfg.Parallel = f.parallel || threadsSet || f.maxCPU
	cfg.Threads = config.EffectiveThreads(f.threads, threadsSet, s.MaxParallelThreads, f.maxCPU)
	return cfg, nil
}

func choose(streams Streams, f *searchFlags, rs search.ResultSet, pattern string, useColor bool) (search.ScoredMatch, error) {
	if f.interactive {
		screen, err := openScreen()
		if err != nil {
			return search.ScoredMatch{}, fmt.Errorf("open terminal screen: %w", err)
		}
		defer screen.Fini()
		p := picker.NewScreen(screen)
		p.SetTitle("ff " + pattern)
		return p.Choose(rs)
	}
	p := picker.NewPrompt(streams.In, streams.Out)
	p.SetColor(useColor)
	return p.Choose(rs)
}

func act(printer *output.Printer, f *searchFlags, m search.ScoredMatch) error {
	dir := actions.TargetDir(m.Path, m.IsDir())

	if f.cdFile != "" {
		if err := shellsetup.WriteResult(f.cdFile, dir); err != nil {
			return err
		}
	}
	if f.copy {
		if err := copyPath(m.Path); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		printer.Copied(m.Path)
	}
	if f.terminal {
		printer.OpeningTerminal(dir)
		if err := openTerminal(dir); err != nil {
			printer.Fallback(fmt.Errorf("failed to open terminal: %w", err), actions.FallbackCommand(dir, runtime.GOOS))
		}
	}
	if f.edit {
		if err := openEditor(m.Path); err != nil {
			return fmt.Errorf("open editor: %w", err)
		}
	}
	if f.interactive && !f.copy && !f.terminal && !f.edit && f.cdFile == "" {
		printer.Selected(m.Path)
	}
	return nil
}

func logLevel(f *searchFlags) logger.Level {
	switch {
	case f.verbose:
		return logger.LevelDebug
	case f.quiet:
		return logger.LevelError
	default:
		return logger.LevelWarn
	}
}

// colorEnabled resolves output_options.color for w. Auto enables colour only
// on a terminal and honours NO_COLOR through fatih/color.
func colorEnabled(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return !color.NoColor && isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && output.IsTerminal(f)
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	return output.TerminalWidth(f)
}
