package ai

import (
	"regexp"
	"strings"
)

// markupPrefix matches one leading bullet ("-", "•", "+", "*") or one
// numbering token ("1.", "2)"). A non-digit glued to the numbering is
// captured so it can be put back; numbers like "1.5 hours" are left alone.
var markupPrefix = regexp.MustCompile(`^(?:[-•+*]\s*|\d+[.)](?:\s+|$|([^\d])))`)

// ParseTasks turns a free-form model reply into task strings. A reply
// that is exactly the Sentinel yields an empty slice.
func ParseTasks(raw string) []string {
	tasks := []string{}
	if strings.TrimSpace(raw) == Sentinel {
		return tasks
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		line = StripMarkup(line)
		if line == "" {
			continue
		}
		tasks = append(tasks, line)
	}
	return tasks
}

// StripMarkup trims a line and removes any stack of leading list markup,
// e.g. "- 1. Book venue" becomes "Book venue".
func StripMarkup(line string) string {
	line = strings.TrimSpace(line)
	for {
		var stripped string
		if strings.HasPrefix(line, "**") && strings.Contains(line[2:], "**") {
			stripped = strings.Replace(line[2:], "**", "", 1)
		} else {
			stripped = markupPrefix.ReplaceAllString(line, "$1")
		}
		stripped = strings.TrimSpace(stripped)
		if stripped == line {
			return line
		}
		line = stripped
	}
}
