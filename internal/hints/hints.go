// Package hints appends actionable advice to CLI diagnostics.
// Every hint is formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/eea/tex2png/internal/fileutil"
)

// excerptRadius is how many runes of context surround a markup error.
const excerptRadius = 24

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser engine launch errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or use --engine vector")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the browser timeout.
func ForTimeout() string {
	return format("raise --timeout or use --engine vector")
}

// ForConfigNotFound suggests --config, or creating the first searched
// path under the user config directory.
func ForConfigNotFound(searchedPaths []string, appDir string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + appDir + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForEmptyInput explains what the command expects on stdin.
func ForEmptyInput() string {
	return format(`pipe an expression on stdin, e.g. echo 'x^2' | tex2png > out.png`)
}

// ForTerminalInput warns that stdin is an interactive terminal.
func ForTerminalInput() string {
	return format("reading from a terminal; finish input with Ctrl-D")
}

// ForMarkup points at byte offset pos of markup with a caret line.
// Returns "" when pos is outside markup.
func ForMarkup(markup string, pos int) string {
	if pos < 0 || pos > len(markup) {
		return ""
	}

	start := pos
	for n := 0; start > 0 && n < excerptRadius; n++ {
		_, size := utf8.DecodeLastRuneInString(markup[:start])
		start -= size
	}
	end := pos
	for n := 0; end < len(markup) && n < excerptRadius; n++ {
		_, size := utf8.DecodeRuneInString(markup[end:])
		end += size
	}

	line := flatten(markup[start:end])
	prefix := ""
	if start > 0 {
		prefix = "..."
	}
	caret := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(markup[start:pos])

	var b strings.Builder
	b.WriteString("\n  | ")
	b.WriteString(prefix)
	b.WriteString(line)
	if end < len(markup) {
		b.WriteString("...")
	}
	b.WriteString("\n  | ")
	b.WriteString(strings.Repeat(" ", caret))
	b.WriteString("^")
	return b.String()
}

// flatten keeps the excerpt on one line without shifting rune columns.
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
