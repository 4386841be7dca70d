// Package unixpath provides a value type for absolute Unix-style paths in a
// container filesystem. Container paths are always slash-separated and
// always begin at the root, regardless of the build host's path
// conventions.
package unixpath

import (
	"fmt"
	"path"
)

// AbsolutePath represents an absolute path inside a container filesystem.
// The zero value is the root "/". AbsolutePath values are comparable
// with ==.
type AbsolutePath struct {
	value string
}

// Parse creates an AbsolutePath from s. It fails unless s begins with "/".
// The stored path is cleaned: redundant separators and "." or ".."
// elements are resolved.
func Parse(s string) (AbsolutePath, error) {
	if s == "" || s[0] != '/' {
		return AbsolutePath{}, fmt.Errorf("path %q is not absolute", s)
	}
	return AbsolutePath{value: path.Clean(s)}, nil
}

// MustParse is like Parse but panics on invalid input. It is intended for
// well-known constant paths.
func MustParse(s string) AbsolutePath {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Resolve returns the path of name under p, with path.Join semantics. The
// result is always absolute.
func (p AbsolutePath) Resolve(name string) AbsolutePath {
	return AbsolutePath{value: path.Join(p.String(), name)}
}

// String returns the slash-separated form, always beginning with "/".
func (p AbsolutePath) String() string {
	if p.value == "" {
		return "/"
	}
	return p.value
}
