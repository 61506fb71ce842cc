package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TargetKind discriminates the location a comment is anchored to.
type TargetKind string

const (
	// TargetPullRequest addresses the pull request conversation itself.
	TargetPullRequest TargetKind = "pull_request"

	// TargetFile addresses a whole file in the diff.
	TargetFile TargetKind = "file"

	// TargetLine addresses a line or line range within a file.
	TargetLine TargetKind = "line"
)

// Target is the canonical comment location: the whole pull request, a
// file, or a line range within a file. A line target always carries a
// non-empty path and Start <= End; a file target is a line target
// with no bounds.
type Target struct {
	Kind  TargetKind
	Path  string
	Start int
	End   int
}

// PullRequestTarget addresses the pull request conversation.
func PullRequestTarget() Target {
	return Target{Kind: TargetPullRequest}
}

// FileTarget addresses a whole file.
func FileTarget(path string) Target {
	return Target{Kind: TargetFile, Path: path}
}

// LineTarget addresses a line range within a file. Single-line
// targets have Start == End.
func LineTarget(path string, start, end int) Target {
	return Target{Kind: TargetLine, Path: path, Start: start, End: end}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetFile:
		return t.Path
	case TargetLine:
		if t.Start == t.End {
			return fmt.Sprintf("%s:%d", t.Path, t.Start)
		}
		return fmt.Sprintf("%s:%d-%d", t.Path, t.Start, t.End)
	default:
		return "pull request"
	}
}

// ParseTarget canonicalizes an optional file path and an optional
// line specifier into a Target. The specifier is a single line number
// ("12") or a range with either accepted delimiter ("5-12", "5:12")
// where start <= end.
func ParseTarget(path, lineSpec string) (Target, error) {
	path = strings.TrimSpace(path)
	lineSpec = strings.TrimSpace(lineSpec)

	if lineSpec != "" && path == "" {
		return Target{}, ErrLineWithoutFile
	}
	if path == "" {
		return PullRequestTarget(), nil
	}
	if lineSpec == "" {
		return FileTarget(path), nil
	}

	start, end, err := parseLineSpec(lineSpec)
	if err != nil {
		return Target{}, err
	}
	return LineTarget(path, start, end), nil
}

func parseLineSpec(spec string) (start, end int, err error) {
	var sep string
	switch {
	case strings.Contains(spec, "-"):
		sep = "-"
	case strings.Contains(spec, ":"):
		sep = ":"
	}

	if sep == "" {
		line, err := parseLineNumber(spec)
		if err != nil {
			return 0, 0, err
		}
		return line, line, nil
	}

	parts := strings.SplitN(spec, sep, 2)
	if start, err = parseLineNumber(parts[0]); err != nil {
		return 0, 0, err
	}
	if end, err = parseLineNumber(parts[1]); err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: start %d is after end %d", ErrInvalidRangeFormat, start, end)
	}
	return start, end, nil
}

func parseLineNumber(value string) (int, error) {
	line, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || line < 1 {
		return 0, fmt.Errorf("%w: %q is not a positive line number", ErrInvalidRangeFormat, value)
	}
	return line, nil
}
