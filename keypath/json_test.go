// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keypath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSortedJSON(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"b": map[string]any{"z": "1", "a": "2"},
		"a": "x & <y>",
	}

	out, err := SortedJSON(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(out)

	if !strings.HasSuffix(text, "\n") {
		t.Error("expected trailing newline")
	}

	if strings.Index(text, `"a"`) > strings.Index(text, `"b"`) {
		t.Error("expected keys sorted at top level")
	}

	if !strings.Contains(text, "x & <y>") {
		t.Error("HTML escaping must be disabled")
	}

	if !strings.Contains(text, "  \"a\"") {
		t.Error("expected two-space indentation")
	}
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "en.json")

		if err := WriteDocument(path, map[string]any{"hello": "Hello"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc, err := ReadDocument(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if doc["hello"] != "Hello" {
			t.Errorf("unexpected document: %v", doc)
		}
	})

	t.Run("MalformedJSONFails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "en.json")

		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := ReadDocument(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("MissingFileFails", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
