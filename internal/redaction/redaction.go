// Package redaction masks credentials in text that leaves the process:
// upstream error snippets, the API URL in health output and printed config.
package redaction

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

const replacement = "[REDACTED]"

// IgnoreFile is the per-home file of extra patterns read by LoadIgnore.
const IgnoreFile = ".redactignore"

type rule struct {
	re   *regexp.Regexp
	repl string
}

// sensitiveRules are applied in order. Rules with a capture group keep the
// prefix (scheme, parameter name) and mask only the value.
var sensitiveRules = []rule{
	// URL userinfo
	{regexp.MustCompile(`(?i)([a-z][a-z0-9+.-]*://)[^/\s@]+@`), "${1}" + replacement + "@"},
	// key=value and key: value
	{regexp.MustCompile(`(?i)\b((?:api[_-]?key|access[_-]?token|token|secret|password|passwd|pwd)\s*[:=]\s*["']?)[^&\s"',;)]+`), "${1}" + replacement},
	// Authorization: Bearer
	{regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9._~+/=-]+`), "${1}" + replacement},
	// JWT
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+(?:\.[a-zA-Z0-9_-]+)?`), replacement},
	{regexp.MustCompile(`(?i)sk_(?:live|test)_[a-zA-Z0-9]+`), replacement},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), replacement},
}

// Redact masks built-in credential shapes in text, then every match of
// extraPatterns (e.g. from LoadIgnore).
func Redact(text string, extraPatterns []*regexp.Regexp) string {
	for _, r := range sensitiveRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	for _, re := range extraPatterns {
		text = re.ReplaceAllString(text, replacement)
	}
	return text
}

// LoadIgnore reads a .redactignore file and compiles each non-blank,
// non-comment line as a regular expression.
// Returns nil (no error) if the file does not exist.
func LoadIgnore(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, scanner.Err()
}
