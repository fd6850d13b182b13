package output

import (
	"fmt"

	"github.com/kk-code-lab/ff/internal/search"
	"github.com/kk-code-lab/ff/internal/textutil"
)

// Completed reports how long the search took.
func (p *Printer) Completed(report search.Report) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "%s Search completed in %.1fms\n", p.pal.warn.Sprint("⚡"), float64(report.Elapsed.Microseconds())/1000)
}

// ActionHint lists the flags that act on a result.
func (p *Printer) ActionHint(n int) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "%s Found %s files. Use these flags for actions:\n", p.pal.warn.Sprint("💡"), p.pal.good.Sprint(n))
	fmt.Fprintf(p.w, "   %s - Open selected file's directory in new terminal\n", p.pal.index.Sprint("-t"))
	fmt.Fprintf(p.w, "   %s - Copy selected file's path to clipboard\n", p.pal.index.Sprint("-c"))
	fmt.Fprintf(p.w, "   %s - Pick from a full-screen list\n", p.pal.index.Sprint("-i"))
}

// Copied confirms a clipboard copy.
func (p *Printer) Copied(path string) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "%s Path copied to clipboard:\n", p.pal.good.Sprint("📋"))
	fmt.Fprintf(p.w, "   %s\n", p.pal.accent.Sprint(textutil.SanitizeTerminalText(path)))
}

// OpeningTerminal announces a terminal launch in dir.
func (p *Printer) OpeningTerminal(dir string) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "%s Opening new terminal in: %s\n", p.pal.good.Sprint("🚀"), p.pal.accent.Sprint(textutil.SanitizeTerminalText(dir)))
}

// Fallback prints a command the user can run by hand after an action failed.
func (p *Printer) Fallback(err error, command string) {
	fmt.Fprintf(p.w, "%s %v\n", p.pal.bad.Sprint("❌"), err)
	fmt.Fprintf(p.w, "%s Fallback - copy this command:\n", p.pal.warn.Sprint("💡"))
	fmt.Fprintln(p.w, textutil.SanitizeTerminalText(command))
}

// Selected prints the chosen path on its own line.
func (p *Printer) Selected(path string) {
	fmt.Fprintln(p.w, textutil.SanitizeTerminalText(path))
}
