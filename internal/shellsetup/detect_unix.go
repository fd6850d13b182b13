//go:build !windows

package shellsetup

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var (
	readProcComm = func(pid int) ([]byte, error) {
		return os.ReadFile("/proc/" + strconv.Itoa(pid) + "/comm")
	}
	psComm = func(pid int) ([]byte, error) {
		return exec.Command("ps", "-o", "comm=", "-p", strconv.Itoa(pid)).Output()
	}
)

// DetectParentShellName returns the command name of the parent process,
// or "" when it cannot be determined.
func DetectParentShellName() string {
	return parentShellName(os.Getppid())
}

func parentShellName(ppid int) string {
	if ppid <= 0 {
		return ""
	}
	out, err := readProcComm(ppid)
	if err != nil {
		if out, err = psComm(ppid); err != nil {
			return ""
		}
	}
	return normalizeShellName(strings.TrimSpace(string(out)))
}
