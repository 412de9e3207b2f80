// Package playback writes rendered frames to a terminal in real time.
//
// A [Scheduler] plays a [frames.Sequence] at the sequence's frame rate. Each
// frame is prefixed with [render.ClearScreen] and written in one call. The
// time the write took is subtracted from the per-frame [Budget] and the
// remainder is slept. A write that uses up the whole budget aborts playback
// with [ErrRenderTooSlow]; frames are never dropped to catch up.
//
// Scheduler states move Ready -> Emitting -> Done, or to Aborted on the first
// slow frame or failed write. A scheduler plays one sequence.
//
// [Live] is the unthrottled variant used for camera capture: it renders and
// writes each grid as soon as the [Source] yields it, until the source fails.
//
// [Detach] starts fire-and-forget work such as audio accompaniment. There is
// no shared clock between a detached task and the scheduler: the task is
// started, then playback begins immediately, and neither observes the other
// afterwards.
package playback
