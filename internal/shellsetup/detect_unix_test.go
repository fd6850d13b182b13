//go:build !windows

package shellsetup

import (
	"errors"
	"testing"
)

func TestParentShellName(t *testing.T) {
	origProc, origPs := readProcComm, psComm
	t.Cleanup(func() { readProcComm, psComm = origProc, origPs })

	readProcComm = func(int) ([]byte, error) { return []byte("zsh\n"), nil }
	psComm = func(int) ([]byte, error) { t.Fatal("ps should not run"); return nil, nil }
	if got := parentShellName(42); got != "zsh" {
		t.Fatalf("parentShellName = %q, want zsh", got)
	}

	readProcComm = func(int) ([]byte, error) { return nil, errors.New("no procfs") }
	psComm = func(int) ([]byte, error) { return []byte("  -bash\n"), nil }
	if got := parentShellName(42); got != "bash" {
		t.Fatalf("parentShellName = %q, want bash", got)
	}

	psComm = func(int) ([]byte, error) { return nil, errors.New("no ps") }
	if got := parentShellName(42); got != "" {
		t.Fatalf("parentShellName = %q, want empty", got)
	}
	if got := parentShellName(0); got != "" {
		t.Fatalf("parentShellName(0) = %q, want empty", got)
	}
}
