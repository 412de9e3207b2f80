// Package pipeline turns media files and cameras into rendered frames.
//
// Images are decoded in-process with the standard library and
// [golang.org/x/image] codecs, then scaled with [draw.BiLinear]. Videos and
// cameras go through the narrow [Prober], [Decoder], [AudioExtractor] and
// [CameraDevice] interfaces, which [ffmpeg.Runner] satisfies and tests replace
// with fakes feeding synthetic RGB24 streams.
package pipeline
