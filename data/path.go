package data

import (
	"path"
	"strings"
)

// CleanPath normalizes p into the canonical inventory form: slash separated,
// no leading or trailing slash, "." and ".." applied. The root is "".
func CleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// JoinPath resolves p relative to base. Absolute paths ignore base.
func JoinPath(base, p string) string {
	if strings.HasPrefix(p, "/") {
		return CleanPath(p)
	}

	return CleanPath(base + "/" + p)
}

// SplitPath separates the final component from the rest of p, the same way
// dirname and basename do. A path without a separator has the parent ".".
func SplitPath(p string) (parent, leaf string) {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		if p == "" {
			return ".", ""
		}
		return "/", ""
	}

	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ".", trimmed
	}

	leaf = trimmed[idx+1:]
	parent = strings.TrimRight(trimmed[:idx], "/")
	if parent == "" {
		parent = "/"
	}

	return parent, leaf
}

// Components splits a cleaned path into its names. The root has none.
func Components(p string) []string {
	if p == "" {
		return nil
	}

	return strings.Split(p, "/")
}

// HasGlob reports whether name contains pattern metacharacters.
func HasGlob(name string) bool {
	return strings.ContainsAny(name, "*?[")
}
