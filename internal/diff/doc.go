// Package diff parses the unified diff hunk fragments GitHub attaches
// to review comments.
//
// A review comment's diff_hunk is a single @@ header followed by the
// lines leading up to the anchored line, so the fragment's last line
// is the one the comment is recorded against. Parsing classifies each
// line and tracks old- and new-side numbers so renderers can show the
// surrounding change.
package diff
