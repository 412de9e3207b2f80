// Package frames splits raw RGB24 video streams into pixel grids and holds
// rendered frame sequences.
//
// A raw stream is a flat concatenation of frames with no framing markers;
// each frame is exactly width*height*3 bytes. [Demux] slices a complete
// buffer, and [Reader] pulls frames from a live stream one at a time. Both
// must be given the width and height the stream was produced with.
//
// A [Sequence] is an ordered list of rendered frames plus the rate they were
// produced for. Sequences are only created through a [Builder], which demuxes
// and renders raw bytes in one step once all of its inputs are present:
//
//	seq, err := frames.NewBuilder(settings).
//		Raw(raw).
//		FPS(info.FrameRate.Float()).
//		Build()
package frames
