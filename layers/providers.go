package layers

import (
	"os"
	"time"

	"github.com/bibin-skaria/layerkit/permissions"
	"github.com/bibin-skaria/layerkit/unixpath"
)

// FilePermissionsProvider decides the permission bits for an entry from its
// host source path and container destination.
type FilePermissionsProvider func(sourcePath string, destination unixpath.AbsolutePath) permissions.FilePermissions

// ModificationTimeProvider decides the modification time for an entry from
// its host source path and container destination.
type ModificationTimeProvider func(sourcePath string, destination unixpath.AbsolutePath) time.Time

// DefaultModificationTime is the timestamp applied to entries when no
// explicit time is supplied: one second past the Unix epoch, UTC. A fixed
// timestamp keeps layer contents identical across rebuilds.
var DefaultModificationTime = time.Unix(1, 0).UTC()

// DefaultFilePermissionsProvider returns 755 for directories and 644 for
// everything else. The decision depends only on whether the source is a
// directory, never on its on-disk permission bits, so layer contents do not
// vary with the build host's umask. A source that cannot be inspected is
// treated as a non-directory.
func DefaultFilePermissionsProvider(sourcePath string, destination unixpath.AbsolutePath) permissions.FilePermissions {
	if isDirectory(sourcePath) {
		return permissions.DefaultFolderPermissions
	}
	return permissions.DefaultFilePermissions
}

// DefaultModificationTimeProvider returns DefaultModificationTime for every
// entry.
func DefaultModificationTimeProvider(sourcePath string, destination unixpath.AbsolutePath) time.Time {
	return DefaultModificationTime
}

// isDirectory reports whether path is a directory, following symlinks.
// Stat failures count as not a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
