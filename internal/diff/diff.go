package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Line struct {
	Type string
	Text string
}

const (
	LineContext = "context"
	LineAdded   = "added"
	LineRemoved = "removed"
)

const MaxPreviewLines = 400

// Lines computes a line-level diff between two texts.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		chunkLines := strings.Split(d.Text, "\n")
		if len(chunkLines) > 0 && chunkLines[len(chunkLines)-1] == "" {
			chunkLines = chunkLines[:len(chunkLines)-1]
		}
		for _, line := range chunkLines {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, Line{Type: LineContext, Text: line})
			case diffmatchpatch.DiffDelete:
				lines = append(lines, Line{Type: LineRemoved, Text: line})
			case diffmatchpatch.DiffInsert:
				lines = append(lines, Line{Type: LineAdded, Text: line})
			}
		}
	}
	return lines
}

// Preview renders a +/- prefixed diff for terminal display. The second return
// is true when the input is too large to preview.
func Preview(before, after string, maxLines int) (string, bool) {
	if maxLines <= 0 {
		maxLines = MaxPreviewLines
	}
	if lineCount(before)+lineCount(after) > maxLines {
		return "", true
	}
	var b strings.Builder
	for _, line := range Lines(before, after) {
		switch line.Type {
		case LineAdded:
			b.WriteString("+ ")
		case LineRemoved:
			b.WriteString("- ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	return b.String(), false
}

func lineCount(value string) int {
	if value == "" {
		return 0
	}
	return strings.Count(value, "\n") + 1
}
