package ffmpeg

// Package ffmpeg implements export.Processor on top of the ffmpeg CLI.
// Every call writes its inputs to a scratch directory, runs one ffmpeg
// invocation and reads the encoded output back into memory.
