package actions

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

var ErrNoEditor = errors.New("no editor configured; set $VISUAL or $EDITOR")

var (
	editorLookPath = exec.LookPath
	runAttached    = func(argv []string) error {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		return cmd.Run()
	}
)

// OpenInEditor opens path in the user's editor and waits for it to exit.
func OpenInEditor(path string) error {
	argv, ok := detectEditorCommand(runtime.GOOS, os.Getenv, editorLookPath)
	if !ok {
		return ErrNoEditor
	}
	return runAttached(append(argv, path))
}

// editorCandidates lists $VISUAL, $EDITOR and the platform fallbacks, in
// order of preference.
func editorCandidates(goos string, getenv func(string) string) [][]string {
	var out [][]string
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if argv := parseCommandLine(getenv(key)); len(argv) > 0 {
			argv[0] = expandUserPath(argv[0])
			out = append(out, argv)
		}
	}
	if strings.EqualFold(goos, "windows") {
		return append(out, []string{"code", "--wait"}, []string{"notepad++.exe"}, []string{"notepad.exe"})
	}
	return append(out, []string{"vim"}, []string{"nano"}, []string{"vi"})
}

func detectEditorCommand(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	for _, argv := range editorCandidates(goos, getenv) {
		resolved, err := lookPath(argv[0])
		if err != nil {
			continue
		}
		return append([]string{resolved}, argv[1:]...), true
	}
	return nil, false
}

// parseCommandLine splits cmd into words. A quoted section, single or double,
// keeps its whitespace and may contain the other quote character.
func parseCommandLine(cmd string) []string {
	var (
		args  []string
		word  strings.Builder
		quote rune
		open  bool
	)
	flush := func() {
		if open {
			args = append(args, word.String())
			word.Reset()
			open = false
		}
	}
	for _, r := range cmd {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, open = r, true
		case unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
			open = true
		}
	}
	flush()
	return args
}

// expandUserPath resolves a leading "~" or "~/" against the home directory.
// "~user" forms are returned unchanged.
func expandUserPath(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != '\\') {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimLeft(rest, `/\`))
}
