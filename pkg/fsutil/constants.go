package fsutil

// File and directory permission constants used for tile trees, archives and config files.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: tiles and archives
	FileModeSecure  = 0o640 // -rw-r-----: config files

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: tile tree folders
	DirModeSecure  = 0o750 // drwxr-x---: config directory
)
