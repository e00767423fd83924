package session

// Package session assembles one editing session: media registry, editor
// store, timeline engine, export pipeline, import service and the export
// journal. The GUI and the CLI both drive the editor through a Session.
