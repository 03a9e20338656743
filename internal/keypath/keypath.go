// Package keypath addresses values inside nested settings maps using
// dot-separated paths such as "server.tls.cert-file".
//
// Writes repair the path: Set creates or overwrites intermediate values so
// that it always succeeds. Reads and deletes tolerate a broken path: Has,
// Get and Remove treat a path that runs through a missing key or a
// non-map value as "not found".
//
// Paths are split on Separator verbatim. An empty path is the single
// segment "" and consecutive separators address keys named "".
package keypath

import "strings"

// Separator delimits path segments.
const Separator = "."

// Split returns the segments of path.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Set stores value at path in root. Every intermediate segment that does not
// hold a map (absent, scalar or slice) is replaced with an empty map.
// root must not be nil.
func Set(root map[string]any, path string, value any) {
	segments := Split(path)
	current := root

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// Lookup returns the value at path and whether the full path resolved.
func Lookup(root map[string]any, path string) (any, bool) {
	var current any = root

	for _, segment := range Split(path) {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		value, exists := m[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// Has reports whether every segment of path resolves.
func Has(root map[string]any, path string) bool {
	_, ok := Lookup(root, path)
	return ok
}

// Get returns the value at path, or def when the path does not resolve.
func Get(root map[string]any, path string, def any) any {
	if value, ok := Lookup(root, path); ok {
		return value
	}
	return def
}

// Remove deletes the value at path. It does nothing when the parent of the
// final segment cannot be reached or the key is absent.
func Remove(root map[string]any, path string) {
	segments := Split(path)
	current := root

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			return
		}
		current = next
	}

	delete(current, segments[len(segments)-1])
}
