package journal

// Package journal keeps a local history of export runs in SQLite
// (modernc.org/sqlite, no cgo). The pipeline records every finished job;
// the CLI and the export dialog list the most recent ones.
