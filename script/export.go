// Package script serializes a [frames.Sequence] into a shell script that
// replays it.
//
// Each frame becomes an echo -e of the clear-screen sequence and the frame,
// followed by a sleep of one frame interval. The script has no shebang and
// is meant to be run with bash.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/render"
)

// ErrWriteOutput indicates the script could not be written.
var ErrWriteOutput = errors.New("write script")

// payloadEscaper escapes characters the shell or echo -e would interpret
// inside a double-quoted argument.
var payloadEscaper = strings.NewReplacer(
	`\`, `\\\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// Interval returns the sleep argument for fps as the shortest decimal that
// represents 1/fps.
func Interval(fps float64) string {
	return strconv.FormatFloat(1/fps, 'f', -1, 64)
}

// Export returns the replay script for seq. The sequence is not consumed.
func Export(seq *frames.Sequence) string {
	var sb strings.Builder

	// Write to a strings.Builder never fails.
	_ = write(&sb, seq)

	return sb.String()
}

// Write writes the replay script for seq to w.
func Write(w io.Writer, seq *frames.Sequence) error {
	bw := bufio.NewWriter(w)

	err := write(bw, seq)
	if err == nil {
		err = bw.Flush()
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// WriteFile writes the replay script for seq to path with mode 0o755,
// replacing any existing file.
func WriteFile(path string, seq *frames.Sequence) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = Write(f, seq)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrWriteOutput, path, err)
	}

	return nil
}

func write(w io.StringWriter, seq *frames.Sequence) error {
	sleep := "sleep " + Interval(seq.FPS()) + "\n"

	for _, frame := range seq.Frames() {
		for _, s := range []string{`echo -e "`, render.ClearScreen, payloadEscaper.Replace(frame), "\"\n", sleep} {
			_, err := w.WriteString(s)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
