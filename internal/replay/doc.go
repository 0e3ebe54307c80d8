// Package replay feeds recorded landmark frames through a tracker and
// writes one output record per frame.
//
// Input is JSON lines, each either {"landmarks":[...]} or a bare landmark
// array. Frames go to a LocalTarget (an in-process tracker) or a
// RemoteTarget (a formcheck server session). Output is JSON lines or CSV,
// and PlotFeature charts the tracked feature over the run.
package replay
