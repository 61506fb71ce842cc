package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// LineType classifies a line within a hunk body.
type LineType int

const (
	// LineContext is an unchanged line present on both sides.
	LineContext LineType = iota
	// LineAddition is a line added on the new side (starts with '+').
	LineAddition
	// LineDeletion is a line removed from the old side (starts with '-').
	LineDeletion
)

// Line is a single classified hunk line. OldLine is zero for
// additions and NewLine is zero for deletions.
type Line struct {
	Type    LineType
	Content string
	OldLine int
	NewLine int
}

// Hunk is one parsed @@ fragment.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Section  string
	Lines    []Line
}

// ParseHunk parses a diff_hunk fragment: an @@ header followed by
// prefixed lines.
func ParseHunk(fragment string) (Hunk, error) {
	lines := strings.Split(strings.TrimRight(fragment, "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "@@") {
		return Hunk{}, fmt.Errorf("not a unified diff hunk: %q", firstLine(fragment))
	}

	hunk, err := parseHunkHeader(lines[0])
	if err != nil {
		return Hunk{}, err
	}

	oldLine := hunk.OldStart
	newLine := hunk.NewStart
	for _, raw := range lines[1:] {
		// Skip "\ No newline at end of file" markers
		if strings.HasPrefix(raw, "\\ ") {
			continue
		}

		line := classify(raw)
		switch line.Type {
		case LineAddition:
			line.NewLine = newLine
			newLine++
		case LineDeletion:
			line.OldLine = oldLine
			oldLine++
		default:
			line.OldLine = oldLine
			line.NewLine = newLine
			oldLine++
			newLine++
		}
		hunk.Lines = append(hunk.Lines, line)
	}

	return hunk, nil
}

// Tail returns the last n lines of the hunk body. The anchored line
// sits at the end of the fragment, so the tail is the part worth
// showing next to a comment.
func (h Hunk) Tail(n int) []Line {
	if len(h.Lines) <= n {
		return h.Lines
	}
	return h.Lines[len(h.Lines)-n:]
}

func classify(raw string) Line {
	switch {
	case strings.HasPrefix(raw, "+"):
		return Line{Type: LineAddition, Content: raw[1:]}
	case strings.HasPrefix(raw, "-"):
		return Line{Type: LineDeletion, Content: raw[1:]}
	case strings.HasPrefix(raw, " "):
		return Line{Type: LineContext, Content: raw[1:]}
	default:
		// Treat unknown as context (handles bare empty lines)
		return Line{Type: LineContext, Content: raw}
	}
}

// parseHunkHeader parses a hunk header line like "@@ -10,7 +10,8 @@ optional section".
func parseHunkHeader(line string) (Hunk, error) {
	parts := strings.SplitN(line, "@@", 3)
	if len(parts) < 3 {
		return Hunk{}, fmt.Errorf("malformed hunk header: %q", line)
	}

	hunk := Hunk{Section: strings.TrimSpace(parts[2])}
	for _, field := range strings.Fields(strings.TrimSpace(parts[1])) {
		switch {
		case strings.HasPrefix(field, "-"):
			hunk.OldStart, hunk.OldLines = parseRange(strings.TrimPrefix(field, "-"))
		case strings.HasPrefix(field, "+"):
			hunk.NewStart, hunk.NewLines = parseRange(strings.TrimPrefix(field, "+"))
		}
	}
	if hunk.OldStart == 0 && hunk.NewStart == 0 {
		return Hunk{}, fmt.Errorf("malformed hunk header: %q", line)
	}
	return hunk, nil
}

// parseRange parses "start,count" or "start" format.
func parseRange(s string) (start, count int) {
	if idx := strings.Index(s, ","); idx >= 0 {
		start, _ = strconv.Atoi(s[:idx])
		count, _ = strconv.Atoi(s[idx+1:])
	} else {
		start, _ = strconv.Atoi(s)
		count = 1
	}
	return
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
