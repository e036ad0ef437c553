// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keypath

import "sort"

// Paths returns every key path defined by doc, in sorted pre-order.
//
// Arrays and scalar values are terminal: an array leaf contributes a single
// path and its elements are never visited. An empty nested object
// contributes nothing.
func Paths(doc map[string]any) []string {
	var out []string

	collect(doc, "", &out)

	return out
}

func collect(node map[string]any, prefix string, out *[]string) {
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if child, ok := node[key].(map[string]any); ok {
			collect(child, path, out)

			continue
		}

		*out = append(*out, path)
	}
}

// PathSet returns the key paths of doc as a set.
func PathSet(doc map[string]any) map[string]struct{} {
	paths := Paths(doc)

	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}

	return set
}
