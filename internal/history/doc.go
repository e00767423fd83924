package history

// Package history wraps a pure reducer with bounded undo/redo.
//
// A History holds the past snapshots, the present state and the redo
// future. Every recorded transition pushes the previous present onto the
// past and clears the future; undo and redo move snapshots between the two
// stacks. Snapshots are values, so nothing is ever mutated in place.
