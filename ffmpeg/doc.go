// Package ffmpeg runs the ffprobe and ffmpeg executables to probe and decode
// media into raw RGB24 frames.
//
// All methods hang off a [Runner], which names the binaries to execute.
// Binaries are resolved with [exec.LookPath] on every call, so a missing tool
// is reported when it is first needed rather than at startup.
//
// # Errors
//
// Every failure of an external tool is a [*ToolError], which matches
// [ErrExternalTool] with [errors.Is] and carries the tool's trimmed stderr.
// A binary that cannot be found additionally matches [ErrToolNotFound].
// Failures are never retried.
//
// # Cameras
//
// [Runner.OpenCamera] captures a camera through ffmpeg's device input:
// v4l2 on Linux, avfoundation on macOS and vfwcap on Windows. Frames are
// streamed, not buffered, and read with [Camera.Next].
package ffmpeg
