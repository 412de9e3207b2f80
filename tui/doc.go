// Package tui is a full-screen Bubble Tea viewer for rendered images and
// videos.
//
// Stills are re-rendered whenever the window is resized. Videos are played
// from their pre-rendered frames on a [tea.Tick] cadence, optionally
// looping, and can be paused. The bottom line shows the most recent log
// record delivered through a [log.Subscription], since writing to stderr
// would tear the alternate screen.
//
// Keys: q, esc or ctrl+c quit; p or space pauses and resumes.
package tui
