package editor

// Package editor holds the composed editor state and everything that changes it.
//
// State is a value: Reduce turns a state and a typed action into a new state
// without touching the old one. Videos are kept outside undo history because
// they own binary resources; every spatially placed kind (images, texts,
// shapes and stickers) shares one bounded undo stack.
//
// Store serializes dispatches, notifies subscribers and releases media
// handles that no reachable state references any more. Editor wraps a Store
// with id generation, canvas clamping and the z-order/selection rules used
// by the preview canvas.
