// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package namespace derives the dotted namespace a translation fragment's
// keys live under from the fragment file's directory location.
package namespace

import (
	"path/filepath"
	"strings"
)

// Resolve converts the location of a fragment file relative to one of the
// configured source roots into a dotted namespace string.
//
// localeSegment names the routing placeholder directory that exists purely
// for file-system routing; segments equal to it never appear in a
// namespace. Routing-bracket segments are rewritten because raw brackets
// are reserved syntax in the key-lookup language:
//
//	[[name]]  -> __name__   (optional segment)
//	[...name] -> ___name    (catch-all segment)
//	[name]    -> _name_     (single dynamic segment)
//
// The empty string means the fragment merges at the document root. Resolve
// is pure: the merger and the unused-key checker both rely on it agreeing
// byte-for-byte for identical inputs.
func Resolve(file, root, prefix, localeSegment string) string {
	dir := filepath.Dir(file)

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return prefix
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")

	transformed := make([]string, 0, len(segments))

	for _, segment := range segments {
		if segment == "" || segment == localeSegment {
			continue
		}

		transformed = append(transformed, transformSegment(segment))
	}

	ns := strings.Join(transformed, ".")

	if prefix != "" {
		if ns == "" {
			return prefix
		}

		return prefix + "." + ns
	}

	return ns
}

// transformSegment rewrites one routing-bracket path segment. Anything that
// is not a bracket form passes through unchanged.
func transformSegment(segment string) string {
	switch {
	case strings.HasPrefix(segment, "[[") && strings.HasSuffix(segment, "]]"):
		return "__" + segment[2:len(segment)-2] + "__"
	case strings.HasPrefix(segment, "[...") && strings.HasSuffix(segment, "]"):
		return "___" + segment[4:len(segment)-1]
	case strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]"):
		return "_" + segment[1:len(segment)-1] + "_"
	}

	return segment
}
