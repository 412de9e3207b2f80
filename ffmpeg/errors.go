package ffmpeg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool matches every [*ToolError].
	ErrExternalTool = errors.New("external tool failed")
	// ErrToolNotFound indicates a binary missing from PATH.
	ErrToolNotFound = errors.New("tool not found")
	// ErrInvalidProbe indicates ffprobe output that could not be parsed.
	ErrInvalidProbe = errors.New("invalid probe output")
)

// ToolError describes a failed ffmpeg or ffprobe invocation.
type ToolError struct {
	Err    error
	Tool   string
	Stderr string
	Args   []string
}

// Error implements [error].
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Tool, e.Err)
	if e.Stderr != "" {
		msg += ": " + lastLine(e.Stderr)
	}

	return msg
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrExternalTool].
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalTool
}

// ffmpeg prints the most specific message last.
func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}

	return s
}
