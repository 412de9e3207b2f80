// Package render turns pixel grids into text frames.
//
// A [Grid] holds RGB24 pixels. [Encode] maps a single pixel to a glyph cell:
// a character picked from the configured ramp by brightness, written twice so
// that a cell pair approximates a square pixel, optionally preceded by a
// truecolor foreground escape. [Render] applies [Encode] across a grid and
// terminates the frame with [Reset].
//
// Brightness uses one of two weighting profiles. Color output uses the
// weights (0.267, 0.642, 0.091); monochrome output uses the Rec. 709 luma
// weights (0.2126, 0.7152, 0.0722). Existing output depends on both, so they
// are kept separate.
//
// Every row of a rendered frame ends where the last pixel of that row would
// be: the final column is consumed by the line break and never drawn. Frames
// compared against earlier output depend on this, so a W-pixel wide grid
// always yields W-1 glyph cells per row.
//
// [Fit] computes an aspect-preserving target size for a source, and
// [TargetSize] applies [Settings.PreserveAspectRatio] to decide between the
// fitted size and a plain stretch.
//
//	s := render.DefaultSettings()
//	s.Width, s.Height = 80, 40
//	frame := render.Render(grid, s)
package render
