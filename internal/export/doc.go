package export

// Package export turns an edited video into a chain of processing calls.
//
// Plan derives the ordered steps from editor state: trim, effect, speed,
// image overlays and text overlays, in that order. Pipeline runs the steps
// one at a time through a Processor, feeding each output into the next step,
// releasing intermediate handles as it goes, and commits only the final
// output back to the editor.
