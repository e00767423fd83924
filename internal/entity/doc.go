package entity

// Package entity provides immutable ordered collections of placed editor
// objects. Every operation returns a new collection and leaves the receiver
// untouched; operations addressing an unknown id return the receiver as is.
