// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keypath

// Get resolves path against doc and returns the addressed value.
//
// An exact map key wins over any nested interpretation; otherwise every
// split point of path is tried, longest head first.
func Get(doc map[string]any, path string) (any, bool) {
	if value, ok := doc[path]; ok {
		return value, true
	}

	for i := len(path) - 1; i > 0; i-- {
		if path[i] != '.' {
			continue
		}

		child, ok := doc[path[:i]].(map[string]any)
		if !ok {
			continue
		}

		if value, ok := Get(child, path[i+1:]); ok {
			return value, true
		}
	}

	return nil, false
}

// Delete removes the value addressed by path from doc, pruning any parent
// objects left empty by the removal. It reports whether anything was
// removed.
//
// Resolution follows the same rules as Get.
func Delete(doc map[string]any, path string) bool {
	if _, ok := doc[path]; ok {
		delete(doc, path)

		return true
	}

	for i := len(path) - 1; i > 0; i-- {
		if path[i] != '.' {
			continue
		}

		head := path[:i]

		child, ok := doc[head].(map[string]any)
		if !ok {
			continue
		}

		if Delete(child, path[i+1:]) {
			if len(child) == 0 {
				delete(doc, head)
			}

			return true
		}
	}

	return false
}
