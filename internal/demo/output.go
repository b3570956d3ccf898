package demo

import (
	"regexp"
	"strings"
)

// userBanner marks the start of a generated block in demo stdout,
// e.g. "==USER 0==". One block per batch user; batch-1 runs emit one.
var userBanner = regexp.MustCompile(`^=+\s*USER\s+\d+\s*=+$`)

// sectionBanner matches pytest/demo section separators such as
// "======= 1 passed in 301.2s =======", which end a generated block.
var sectionBanner = regexp.MustCompile(`^=+[^=]*=+$`)

// ExtractGeneratedText pulls the generated text out of demo stdout.
// The demo prints each completion under a USER banner, surrounded by
// device bringup logs and the pytest summary. When no banner is
// present the full stdout is returned unchanged, so callers always
// see whatever the demo produced.
func ExtractGeneratedText(stdout string) string {
	var blocks []string
	var current []string
	inBlock := false

	flush := func() {
		if !inBlock {
			return
		}
		if text := strings.TrimSpace(strings.Join(current, "\n")); text != "" {
			blocks = append(blocks, text)
		}
		current = current[:0]
		inBlock = false
	}

	for _, line := range strings.Split(stdout, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case userBanner.MatchString(trimmed):
			flush()
			inBlock = true
		case inBlock && (sectionBanner.MatchString(trimmed) || isLogRecord(trimmed)):
			flush()
		case inBlock:
			current = append(current, line)
		}
	}
	flush()

	if len(blocks) == 0 {
		return stdout
	}
	return strings.Join(blocks, "\n\n")
}

// isLogRecord reports whether a line is loguru-style framework output
// ("2025-01-02 03:04:05.678 | INFO | ...") rather than generated text.
func isLogRecord(line string) bool {
	i := strings.Index(line, " | ")
	if i < 0 {
		return false
	}
	rest := line[i+3:]
	for _, level := range []string{"TRACE", "DEBUG", "INFO", "SUCCESS", "WARNING", "ERROR", "CRITICAL"} {
		if strings.HasPrefix(rest, level) {
			return true
		}
	}
	return false
}
