package cli

// Package cli implements the headless reel command line: export a clip with
// edits applied, print the timeline layout, import remote clips, list the
// export journal and the available effects.
