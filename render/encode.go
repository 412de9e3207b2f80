package render

import (
	"math"
	"strings"
)

// RGB is an 8-bit per channel pixel.
type RGB struct {
	R, G, B uint8
}

// RGBNorm is a pixel with channels normalized to [0, 1].
type RGBNorm struct {
	R, G, B float64
}

// Encode returns the glyph cell for p: the ramp character selected by
// brightness, written twice, prefixed with a truecolor escape when s.Color is
// set. Encode is pure.
func Encode(p RGB, s Settings) string {
	var sb strings.Builder

	encodeTo(&sb, p, s)

	return sb.String()
}

// EncodeNormalized is [Encode] for normalized input. Brightness is measured
// against a full scale of 1, and the color escape carries the channels
// scaled to 0-255.
func EncodeNormalized(p RGBNorm, s Settings) string {
	var sb strings.Builder

	var b float64
	if s.Color {
		b = 0.267*p.R + 0.642*p.G + 0.091*p.B
	} else {
		b = 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
	}

	idx := rampIndex(len(s.Ramp), math.Round(b*float64(len(s.Ramp)-1)))
	writeCell(&sb, s, idx, to8(p.R), to8(p.G), to8(p.B))

	return sb.String()
}

func encodeTo(sb *strings.Builder, p RGB, s Settings) {
	// float32 keeps bucket boundaries identical to previously rendered output.
	var b float32
	if s.Color {
		b = float32(0.267*float32(p.R)) + float32(0.642*float32(p.G)) + float32(0.091*float32(p.B))
	} else {
		b = float32(0.2126*float32(p.R)) + float32(0.7152*float32(p.G)) + float32(0.0722*float32(p.B))
	}

	scaled := float32(float32(float32(len(s.Ramp)-1)*b) / 255)
	idx := rampIndex(len(s.Ramp), math.Round(float64(scaled)))
	writeCell(sb, s, idx, p.R, p.G, p.B)
}

func writeCell(sb *strings.Builder, s Settings, idx int, r, g, b uint8) {
	if s.Color {
		var buf [len("\x1b[38;2;255;255;255m")]byte
		sb.Write(appendTruecolor(buf[:0], r, g, b))
	}

	c := s.Ramp[idx]
	sb.WriteRune(c)
	sb.WriteRune(c)
}

func rampIndex(n int, v float64) int {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > float64(n-1):
		return n - 1
	}

	return int(v)
}

func to8(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	}

	return uint8(math.Round(v * 255))
}
