// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keypath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

const documentFilePermissions = 0o644

// ReadDocument reads and parses the JSON translation document at path.
//
// Parse errors are returned as-is: a corrupt translation file must halt the
// calling check or merge run.
func ReadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- translation files come from configured roots
	if err != nil {
		return nil, fmt.Errorf("failed to read translation document: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return doc, nil
}

// SortedJSON renders doc as pretty-printed JSON with two-space indentation,
// a trailing newline, and keys sorted alphabetically at every level.
//
// HTML escaping is disabled so translation text round-trips unchanged.
func SortedJSON(doc any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode translation document: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteDocument writes doc to path in the compiled dictionary format.
func WriteDocument(path string, doc any) error {
	data, err := SortedJSON(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, documentFilePermissions); err != nil {
		return fmt.Errorf("failed to write translation document: %w", err)
	}

	return nil
}
