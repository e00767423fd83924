package platform

// Package platform contains OS integration glue: filesystem helpers for the
// export and import directories, saving finished artifacts, and revealing or
// opening files with the desktop's own tools.
