// Package stringtest builds expected text for tests that compare rendered
// frames and generated scripts.
package stringtest

import "strings"

// JoinLF joins lines with LF line endings.
// Use it to spell out an expected frame row by row.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"##  ",
//		"  ##",
//		render.Reset,
//	) // -> "##  \n  ##\n\x1b[0m"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Lines splits s on LF and returns the rows. A frame ending in "\n" followed
// by a trailer yields the trailer as its last element.
func Lines(s string) []string {
	return strings.Split(s, "\n")
}

// Escape makes control characters visible, which keeps assertion failures on
// ANSI-heavy output readable.
//
// Example:
//
//	stringtest.Escape("\x1b[0m") // -> `\x1b[0m`
func Escape(s string) string {
	var sb strings.Builder

	for _, r := range s {
		switch {
		case r == '\n':
			sb.WriteString(`\n`)
		case r < 0x20 || r == 0x7f:
			sb.WriteString(`\x`)
			sb.WriteByte("0123456789abcdef"[r>>4])
			sb.WriteByte("0123456789abcdef"[r&0xf])
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
