package layers

import (
	"fmt"
	"time"

	"github.com/bibin-skaria/layerkit/permissions"
	"github.com/bibin-skaria/layerkit/unixpath"
)

// Entry describes one node of a layer: a host source path mapped to an
// absolute path inside the container, together with the permission bits and
// modification time the packaged entry will carry.
type Entry struct {
	SourcePath       string
	ContainerPath    unixpath.AbsolutePath
	Permissions      permissions.FilePermissions
	ModificationTime time.Time
}

// Equal reports whether two entries describe the same node with the same
// attributes. Modification times are compared with time.Time.Equal.
func (e Entry) Equal(other Entry) bool {
	return e.SourcePath == other.SourcePath &&
		e.ContainerPath == other.ContainerPath &&
		e.Permissions == other.Permissions &&
		e.ModificationTime.Equal(other.ModificationTime)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s (%s)", e.SourcePath, e.ContainerPath, e.Permissions)
}

// Layer is an immutable description of one image layer: a name and an
// ordered list of entries. Layers are created by Builder.Build and never
// change afterward, so they are safe for concurrent readers.
type Layer struct {
	name    string
	entries []Entry
}

// Name returns the layer's label. The name does not affect layer contents.
func (l *Layer) Name() string {
	return l.name
}

// Entries returns the layer's entries in the order they were added. The
// returned slice is a copy; mutating it does not affect the layer.
func (l *Layer) Entries() []Entry {
	return copyEntries(l.entries)
}

// ToBuilder returns a new Builder pre-populated with the layer's name and a
// copy of its entries.
func (l *Layer) ToBuilder() *Builder {
	return NewBuilder().SetName(l.name).SetEntries(l.entries)
}

// TraversalError represents a filesystem enumeration failure during
// recursive entry collection.
type TraversalError struct {
	Path  string
	Cause error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Cause)
}

func (e *TraversalError) Unwrap() error {
	return e.Cause
}

// NewTraversalError creates a new TraversalError
func NewTraversalError(path string, cause error) *TraversalError {
	return &TraversalError{
		Path:  path,
		Cause: cause,
	}
}

func copyEntries(entries []Entry) []Entry {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return copied
}
