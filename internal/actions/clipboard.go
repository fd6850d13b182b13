// Package actions performs what the user chose to do with a selected result.
package actions

import (
	"errors"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

var ErrClipboardUnavailable = errors.New("no clipboard mechanism available")

var (
	clipboardWriteAll = clipboard.WriteAll
	clipboardLookPath = exec.LookPath
	runClipboardCmd   = func(argv []string, input string) error {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(input)
		return cmd.Run()
	}
)

// CopyPath places path on the system clipboard. The native clipboard is
// tried first; when it is unavailable a command-line tool is used instead.
func CopyPath(p string) error {
	p = normalizeClipboardPath(p, runtime.GOOS)
	err := clipboardWriteAll(p)
	if err == nil {
		return nil
	}

	argv, ok := detectClipboardCommand(runtime.GOOS, clipboardLookPath)
	if !ok {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	if cmdErr := runClipboardCmd(argv, p); cmdErr != nil {
		return fmt.Errorf("copy with %s: %w", filepath.Base(argv[0]), cmdErr)
	}
	return nil
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

func detectClipboardCommand(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	if strings.EqualFold(goos, "windows") {
		if p, ok := firstOnPath(lookPath, "clip.exe", "clip"); ok {
			return []string{p}, true
		}
		if p, ok := firstOnPath(lookPath, "powershell", "powershell.exe", "pwsh"); ok {
			return []string{p, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
		}
	}

	if p, ok := firstOnPath(lookPath, "pbcopy", "wl-copy"); ok {
		return []string{p}, true
	}
	if p, ok := firstOnPath(lookPath, "xclip"); ok {
		return []string{p, "-selection", "clipboard"}, true
	}
	if p, ok := firstOnPath(lookPath, "xsel"); ok {
		return []string{p, "--clipboard", "--input"}, true
	}
	return nil, false
}

func firstOnPath(lookPath func(string) (string, error), candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		if p, err := lookPath(candidate); err == nil && p != "" {
			return p, true
		}
	}
	return "", false
}
