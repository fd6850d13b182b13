package actions

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var ErrNoTerminal = errors.New("no terminal emulator found")

var (
	terminalLookPath = exec.LookPath
	startCommand     = func(argv []string, dir string) error {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Dir = dir
		return cmd.Start()
	}
)

// TargetDir is the directory an action should operate in: the path itself
// for directories, its parent otherwise.
func TargetDir(p string, isDir bool) string {
	if isDir {
		return p
	}
	return filepath.Dir(p)
}

// OpenTerminal starts a new terminal window whose working directory is dir.
func OpenTerminal(dir string) error {
	argv, err := terminalCommand(runtime.GOOS, dir, os.Getenv, terminalLookPath)
	if err != nil {
		return err
	}
	if err := startCommand(argv, dir); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(argv[0]), err)
	}
	return nil
}

// linuxTerminals are tried in order; each entry is the binary followed by the
// flag that sets the working directory.
var linuxTerminals = [][2]string{
	{"gnome-terminal", "--working-directory"},
	{"konsole", "--workdir"},
	{"xfce4-terminal", "--working-directory"},
	{"alacritty", "--working-directory"},
	{"kitty", "--directory"},
	{"wezterm", "start --cwd"},
	{"x-terminal-emulator", "--working-directory"},
}

func terminalCommand(goos, dir string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, error) {
	switch strings.ToLower(goos) {
	case "windows":
		if p, ok := firstOnPath(lookPath, "wt.exe", "wt"); ok {
			return []string{p, "-d", dir}, nil
		}
		comspec := getenv("COMSPEC")
		if comspec == "" {
			comspec = "cmd.exe"
		}
		return []string{comspec, "/C", "start", "/D", dir, "cmd"}, nil
	case "darwin":
		script := fmt.Sprintf("tell application \"Terminal\" to do script \"cd %s && clear\"", shellQuote(dir))
		if p, ok := firstOnPath(lookPath, "osascript"); ok {
			return []string{p, "-e", script}, nil
		}
		return nil, ErrNoTerminal
	}

	if term := strings.TrimSpace(getenv("TERMINAL")); term != "" {
		if p, ok := firstOnPath(lookPath, term); ok {
			return []string{p}, nil
		}
	}
	for _, t := range linuxTerminals {
		p, ok := firstOnPath(lookPath, t[0])
		if !ok {
			continue
		}
		argv := append([]string{p}, strings.Fields(t[1])...)
		return append(argv, dir), nil
	}
	if p, ok := firstOnPath(lookPath, "xterm"); ok {
		shell := getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		return []string{p, "-e", shell, "-c", "cd " + shellQuote(dir) + " && exec " + shell}, nil
	}
	return nil, ErrNoTerminal
}

// FallbackCommand is the command a user can paste to reach dir when no
// terminal could be opened.
func FallbackCommand(dir, goos string) string {
	if strings.EqualFold(goos, "windows") {
		return "cd /d " + dir
	}
	return "cd " + shellQuote(dir)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
