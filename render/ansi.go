package render

import "strconv"

const (
	// Reset turns off all SGR attributes.
	Reset = "\x1b[0m"
	// ClearScreen erases the whole display.
	ClearScreen = "\x1b[2J"
)

// Truecolor returns the SGR sequence selecting a 24-bit foreground color.
func Truecolor(r, g, b uint8) string {
	buf := make([]byte, 0, len("\x1b[38;2;255;255;255m"))

	return string(appendTruecolor(buf, r, g, b))
}

func appendTruecolor(buf []byte, r, g, b uint8) []byte {
	buf = append(buf, "\x1b[38;2;"...)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)

	return append(buf, 'm')
}
