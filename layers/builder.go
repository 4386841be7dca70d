package layers

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bibin-skaria/layerkit/permissions"
	"github.com/bibin-skaria/layerkit/unixpath"
)

// Builder accumulates layer entries and produces immutable Layer
// descriptions. Create Builders with NewBuilder or Layer.ToBuilder. A
// Builder is not safe for concurrent use.
type Builder struct {
	name    string
	entries []Entry
}

// NewBuilder creates an empty Builder
func NewBuilder() *Builder {
	return &Builder{}
}

// SetName sets the layer's label. Any string is accepted.
func (b *Builder) SetName(name string) *Builder {
	b.name = name
	return b
}

// SetEntries replaces the accumulated entries with a copy of entries, so
// later changes to the caller's slice do not reach the Builder.
func (b *Builder) SetEntries(entries []Entry) *Builder {
	b.entries = copyEntries(entries)
	return b
}

// AddEntry appends one fully specified entry. Entries are kept in insertion
// order, and several entries may target the same container path.
func (b *Builder) AddEntry(entry Entry) *Builder {
	b.entries = append(b.entries, entry)
	return b
}

// Add appends one entry mapping sourcePath to pathInContainer, resolving
// permissions and modification time through the default providers. A
// directory source adds only the directory node itself; use AddRecursive to
// include its contents.
func (b *Builder) Add(sourcePath string, pathInContainer unixpath.AbsolutePath) *Builder {
	return b.AddWithAttributes(sourcePath, pathInContainer,
		DefaultFilePermissionsProvider(sourcePath, pathInContainer),
		DefaultModificationTimeProvider(sourcePath, pathInContainer))
}

// AddWithPermissions is Add with explicit permission bits.
func (b *Builder) AddWithPermissions(sourcePath string, pathInContainer unixpath.AbsolutePath, perms permissions.FilePermissions) *Builder {
	return b.AddWithAttributes(sourcePath, pathInContainer, perms,
		DefaultModificationTimeProvider(sourcePath, pathInContainer))
}

// AddWithModificationTime is Add with an explicit modification time.
func (b *Builder) AddWithModificationTime(sourcePath string, pathInContainer unixpath.AbsolutePath, modTime time.Time) *Builder {
	return b.AddWithAttributes(sourcePath, pathInContainer,
		DefaultFilePermissionsProvider(sourcePath, pathInContainer), modTime)
}

// AddWithAttributes appends one entry with explicit permissions and
// modification time.
func (b *Builder) AddWithAttributes(sourcePath string, pathInContainer unixpath.AbsolutePath, perms permissions.FilePermissions, modTime time.Time) *Builder {
	return b.AddEntry(Entry{
		SourcePath:       sourcePath,
		ContainerPath:    pathInContainer,
		Permissions:      perms,
		ModificationTime: modTime,
	})
}

// AddRecursive appends entries for sourcePath and, if it is a directory,
// everything under it, resolving permissions and modification times through
// the default providers.
func (b *Builder) AddRecursive(sourcePath string, pathInContainer unixpath.AbsolutePath) error {
	return b.AddRecursiveWithProviders(sourcePath, pathInContainer, nil, nil)
}

// AddRecursiveWithProviders is AddRecursive with pluggable permission and
// modification time policies. A nil provider falls back to the
// corresponding default.
//
// Entries are appended in pre-order: each node precedes its contents, and a
// directory's children appear in the order the filesystem returns them,
// which is not guaranteed to be sorted. A source that is not a directory,
// or cannot be inspected at all, contributes exactly one entry. Symlinks
// are not specially resolved: the directory check follows them, so a
// symlink cycle will not terminate.
//
// If listing a directory fails, traversal stops with a *TraversalError
// naming that directory. Entries appended before the failure remain in the
// Builder.
func (b *Builder) AddRecursiveWithProviders(sourcePath string, pathInContainer unixpath.AbsolutePath, permsProvider FilePermissionsProvider, modTimeProvider ModificationTimeProvider) error {
	if permsProvider == nil {
		permsProvider = DefaultFilePermissionsProvider
	}
	if modTimeProvider == nil {
		modTimeProvider = DefaultModificationTimeProvider
	}
	return b.addRecursive(sourcePath, pathInContainer, permsProvider, modTimeProvider)
}

func (b *Builder) addRecursive(sourcePath string, pathInContainer unixpath.AbsolutePath, permsProvider FilePermissionsProvider, modTimeProvider ModificationTimeProvider) error {
	b.AddWithAttributes(sourcePath, pathInContainer,
		permsProvider(sourcePath, pathInContainer),
		modTimeProvider(sourcePath, pathInContainer))

	if !isDirectory(sourcePath) {
		return nil
	}

	// The directory handle is drained and closed before any recursion.
	dir, err := os.Open(sourcePath)
	if err != nil {
		return NewTraversalError(sourcePath, err)
	}
	children, err := dir.ReadDir(-1)
	dir.Close()
	if err != nil {
		return NewTraversalError(sourcePath, err)
	}

	for _, child := range children {
		childSource := filepath.Join(sourcePath, child.Name())
		childDest := pathInContainer.Resolve(child.Name())
		if err := b.addRecursive(childSource, childDest, permsProvider, modTimeProvider); err != nil {
			return err
		}
	}

	return nil
}

// Build returns an immutable Layer holding the current name and a copy of
// the accumulated entries. The Builder stays usable; later mutations do not
// affect layers already built.
func (b *Builder) Build() *Layer {
	return &Layer{
		name:    b.name,
		entries: copyEntries(b.entries),
	}
}
