// Package shellsetup prints the shell function that lets ff change the
// working directory of the calling shell.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// FunctionName is the name of the generated shell function.
const FunctionName = "ffcd"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable is the ff binary the function calls. Defaults to the running
	// executable.
	Executable string
}

// PrintSetup writes the integration snippet for shellOverride, or for the
// detected shell when it is empty, and returns the shell it was written for.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) string {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "ff"
		}
	}

	io.WriteString(w, Script(shell, exe))
	return shell
}

// Script returns the snippet for shell. The function runs ff with --cd-file
// pointing at a fresh temporary file and changes into the directory ff writes
// there. Unknown shells get the POSIX variant.
func Script(shell, exe string) string {
	quoted := strconv.Quote(exe)

	switch shell {
	case "fish":
		return fmt.Sprintf(`function %[1]s
    set result_file (mktemp)
    command %[2]s --cd-file "$result_file" $argv
    set ff_status $status
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        if test -n "$dest" -a -d "$dest"
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
    return $ff_status
end
`, FunctionName, quoted)
	case "pwsh":
		return fmt.Sprintf(`function %[1]s {
    $resultFile = New-TemporaryFile
    try {
        & %[2]s --cd-file $resultFile.FullName @args
        $dest = Get-Content $resultFile.FullName -Raw -ErrorAction SilentlyContinue
        if ($dest) {
            $dest = $dest.Trim()
            if (Test-Path $dest -PathType Container) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile.FullName -ErrorAction SilentlyContinue
    }
}
`, FunctionName, quoted)
	case "tcsh", "csh":
		return fmt.Sprintf("alias %s 'set ff_result=`mktemp`; %s --cd-file $ff_result \\!*; "+
			"if ( -d \"`cat $ff_result`\" ) cd \"`cat $ff_result`\"; rm -f $ff_result'\n", FunctionName, quoted)
	case "cmd":
		return fmt.Sprintf(`:: Save as %[1]s.cmd somewhere on PATH.
@echo off
setlocal
set "ff_result=%%TEMP%%\ff_result_%%RANDOM%%%%RANDOM%%.txt"
%[2]s --cd-file "%%ff_result%%" %%*
set "ff_status=%%errorlevel%%"
set "ff_dest="
if exist "%%ff_result%%" (
    set /p ff_dest=<"%%ff_result%%"
    del "%%ff_result%%" >nul 2>&1
)
endlocal & if not "%%ff_dest%%"=="" cd /d "%%ff_dest%%" & exit /b %%ff_status%%
`, FunctionName, quoted)
	default:
		return fmt.Sprintf(`%[1]s() {
    result_file=$(mktemp) || return 1
    command %[2]s --cd-file "$result_file" "$@"
    ff_status=$?
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        if [ -n "$dest" ] && [ -d "$dest" ]; then
            cd "$dest"
        fi
    fi
    rm -f "$result_file" 2>/dev/null
    return $ff_status
}
`, FunctionName, quoted)
	}
}

// WriteResult stores dir in the file handed over by the shell function.
// The file is created owner-only when it does not exist yet.
func WriteResult(file, dir string) error {
	if err := os.WriteFile(file, []byte(dir), 0o600); err != nil {
		return fmt.Errorf("write directory for shell: %w", err)
	}
	return nil
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimPrefix(base, "-")
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, quote := range []string{`"`, `'`} {
		if rest, ok := strings.CutPrefix(value, quote); ok {
			if idx := strings.Index(rest, quote); idx >= 0 {
				return rest[:idx]
			}
			return rest
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
