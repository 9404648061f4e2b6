// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// uri.go implements the content-addressed string identifier used as the key
// for every asset provider. A Uri is immutable once constructed: its hash is
// computed once and cached, so it is cheap to use as a map key and safe to
// pass around/compare without recomputing anything.

import (
	"hash/fnv"
	"path"
	"strings"
)

// Uri is an immutable (string, precomputed-hash) pair.
type Uri struct {
	value string
	hash  uint64
}

// NewUri normalizes path separators to forward slash and caches the hash.
func NewUri(value string) Uri {
	value = strings.ReplaceAll(value, "\\", "/")
	h := fnv.New64a()
	h.Write([]byte(value))
	return Uri{value: value, hash: h.Sum64()}
}

// Value returns the normalized URI string.
func (u Uri) Value() string { return u.value }

// Hash returns the cached hash, stable for the lifetime of the Uri.
func (u Uri) Hash() uint64 { return u.hash }

// IsEmpty reports whether the Uri holds no value.
func (u Uri) IsEmpty() bool { return u.value == "" }

// Parent returns the URI one path segment up, eg "a/b/c" -> "a/b".
func (u Uri) Parent() Uri {
	dir := path.Dir(u.value)
	if dir == "." {
		dir = ""
	}
	return NewUri(dir)
}

// Append joins a path segment onto the URI, eg "a/b".Append("c") -> "a/b/c".
func (u Uri) Append(segment string) Uri {
	if u.value == "" {
		return NewUri(segment)
	}
	return NewUri(u.value + "/" + segment)
}

// Concat appends suffix directly to the URI's string value with no
// separator, eg "a/b".Concat(".json") -> "a/b.json".
func (u Uri) Concat(suffix string) Uri {
	return NewUri(u.value + suffix)
}

// AbsolutePath joins root with the URI using host filesystem rules.
func (u Uri) AbsolutePath(root string) string {
	return path.Join(root, u.value)
}

// String satisfies fmt.Stringer for logging.
func (u Uri) String() string { return u.value }
