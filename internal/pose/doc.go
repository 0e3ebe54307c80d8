// Package pose owns the per-frame body model fed into the exercise trackers.
//
// Responsibilities: the 33-landmark frame topology, defensive landmark
// lookup, planar geometry (joint angles and distances), and visibility-based
// side selection for bilateral joint groups.
// Key types: Landmark, Frame, JointGroup, Side.
//
// Dependency rule: pose depends on nothing else in this module. Everything
// here is stateless and safe for concurrent use.
package pose
