// Package exercise owns the per-exercise tracking state machines.
//
// Responsibilities: turning per-frame pose features into debounced phases,
// counting repetitions with cooldown, timing plank holds, scoring form and
// choosing a feedback category for each frame.
// Key types: Tracker, Result, Feedback, Type, Config.
//
// Dependency rule: exercise may depend on pose, config, monitoring and
// timeutil, but never on session, api or any I/O. Trackers are not safe for
// concurrent use; callers serialise Analyze per instance.
package exercise
