package artifactmeta

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changed lines between before and after, removed lines prefixed with "-" and added lines with "+".
// Unchanged lines are left out.
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	beforeLines, afterLines, lines := dmp.DiffLinesToChars(before, after)
	hunks := dmp.DiffMain(beforeLines, afterLines, false)
	hunks = dmp.DiffCharsToLines(hunks, lines)

	var result strings.Builder
	for _, hunk := range hunks {
		var prefix string
		switch hunk.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(hunk.Text, "\n") {
			if line == "" {
				continue
			}
			result.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return result.String()
}
