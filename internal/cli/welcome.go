package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func printWelcome(w io.Writer) {
	title := color.New(color.FgHiCyan, color.Bold)
	section := color.New(color.FgYellow, color.Bold)
	name := color.New(color.FgGreen, color.Bold)
	opt := color.New(color.FgBlue)
	dim := color.New(color.Faint)

	fmt.Fprintln(w, title.Sprint("🚀 Fast File Finder"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Sprint("USAGE:"))
	fmt.Fprintf(w, "    %s <pattern> [options]\n", name.Sprint("ff"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Sprint("EXAMPLES:"))
	fmt.Fprintf(w, "    %s <your_file_name>   %s\n", name.Sprint("ff"), dim.Sprint("→ Locate that file"))
	fmt.Fprintf(w, "    %s main.go            %s\n", name.Sprint("ff"), dim.Sprint("→ Find main.go files"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, section.Sprint("OPTIONS:"))
	for _, o := range [][2]string{
		{"--path <dir>", "Search in specific directory"},
		{"--copy", "Copy path to clipboard"},
		{"--hidden", "Include hidden files"},
		{"--dirs-only", "Find only directories"},
		{"--files-only", "Find only files"},
	} {
		fmt.Fprintf(w, "    %s %s\n", opt.Sprintf("%-16s", o[0]), dim.Sprint(o[1]))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "   Type %s for detailed help\n", name.Sprint("ff --help"))
	fmt.Fprintf(w, "%s Press %s to cancel search anytime\n", color.YellowString("⚠️"), color.RedString("Ctrl+C"))
}
