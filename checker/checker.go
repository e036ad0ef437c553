// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package checker cross-references compiled dictionaries against each other
and against usage-scanner output.

Three checkers are provided: Alignment compares every non-reference
language's dictionary with the reference key set and can rewrite drifted
files; Undefined finds keys that are used in source but never defined;
Unused finds keys that are defined but never used and can remove them from
their owning fragment files.

Every check is a pure batch pass over the current on-disk state; no
checker holds state across runs.
*/
package checker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/i18nkit/i18nkit/keypath"
)

// ErrReferenceMissing is returned when the reference language's compiled
// dictionary does not exist. Checks must not proceed without it.
var ErrReferenceMissing = errors.New("reference dictionary not found")

// loadReference reads the compiled reference dictionary from dir.
func loadReference(dir, lang string) (map[string]any, string, error) {
	path := filepath.Join(dir, lang+".json")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, path, fmt.Errorf("%w: %s", ErrReferenceMissing, path)
	}

	doc, err := keypath.ReadDocument(path)

	return doc, path, err
}
