// Package permissions provides a value type for the Unix permission bits
// carried by container layer entries.
package permissions

import (
	"fmt"
	"io/fs"
	"strconv"
)

// FilePermissions represents Unix permission bits for a layer entry.
// Values are not validated; callers may supply arbitrary bits.
type FilePermissions fs.FileMode

// Defaults applied to entries when no explicit permissions are supplied.
const (
	DefaultFilePermissions   FilePermissions = 0o644
	DefaultFolderPermissions FilePermissions = 0o755
)

// FromFileMode extracts the permission bits from mode, discarding file type
// and other non-permission bits.
func FromFileMode(mode fs.FileMode) FilePermissions {
	return FilePermissions(mode.Perm())
}

// FromOctalString parses a three digit octal string such as "644" or "755".
func FromOctalString(s string) (FilePermissions, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("permissions must be 3 octal digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 8, 16)
	if err != nil {
		return 0, fmt.Errorf("permissions must be 3 octal digits, got %q", s)
	}
	return FilePermissions(v), nil
}

// FileMode returns the permissions as an fs.FileMode.
func (p FilePermissions) FileMode() fs.FileMode {
	return fs.FileMode(p)
}

// String returns the octal form, such as "644".
func (p FilePermissions) String() string {
	return fmt.Sprintf("%03o", uint32(p))
}
