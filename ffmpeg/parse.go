package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"go.jacobcolvin.com/asciivid/render"
)

// Rational is an exact frame rate such as 30000/1001.
type Rational struct {
	Num int64
	Den int64
}

// Float returns Num/Den.
func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String returns the rate in ffmpeg's NUM/DEN notation.
func (r Rational) String() string {
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatInt(r.Den, 10)
}

// ParseRational parses "NUM/DEN" or a plain integer. Both parts must be
// positive.
func ParseRational(s string) (Rational, error) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		den = "1"
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: rate %q: %w", ErrInvalidProbe, s, err)
	}

	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: rate %q: %w", ErrInvalidProbe, s, err)
	}

	if n <= 0 || d <= 0 {
		return Rational{}, fmt.Errorf("%w: rate %q is not positive", ErrInvalidProbe, s)
	}

	return Rational{Num: n, Den: d}, nil
}

// StreamInfo describes the first video stream of an input.
type StreamInfo struct {
	Size      render.Size
	FrameRate Rational
}

// ParseStreamInfo parses ffprobe output of the form WIDTHxHEIGHTxNUM/DEN, as
// printed with -of csv=s=x:p=0. Only the first non-empty line is read and a
// trailing separator is ignored.
func ParseStreamInfo(out string) (StreamInfo, error) {
	line := ""

	for l := range strings.Lines(out) {
		l = strings.TrimSpace(l)
		if l != "" {
			line = l

			break
		}
	}

	fields := strings.Split(strings.TrimSuffix(line, "x"), "x")
	if len(fields) != 3 {
		return StreamInfo{}, fmt.Errorf("%w: want WIDTHxHEIGHTxRATE, got %q", ErrInvalidProbe, line)
	}

	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: width: %w", ErrInvalidProbe, err)
	}

	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: height: %w", ErrInvalidProbe, err)
	}

	if w <= 0 || h <= 0 {
		return StreamInfo{}, fmt.Errorf("%w: size %dx%d", ErrInvalidProbe, w, h)
	}

	rate, err := ParseRational(fields[2])
	if err != nil {
		return StreamInfo{}, err
	}

	return StreamInfo{Size: render.Size{W: w, H: h}, FrameRate: rate}, nil
}
