// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keypath

import "testing"

func TestGet(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"common": map[string]any{
			"save":      "Save",
			"error.404": "Not Found",
		},
	}

	t.Run("NestedPath", func(t *testing.T) {
		t.Parallel()

		value, ok := Get(doc, "common.save")
		if !ok || value != "Save" {
			t.Errorf("Get(common.save) = %v, %v", value, ok)
		}
	})

	t.Run("DottedKeyWins", func(t *testing.T) {
		t.Parallel()

		value, ok := Get(doc, "common.error.404")
		if !ok || value != "Not Found" {
			t.Errorf("Get(common.error.404) = %v, %v", value, ok)
		}
	})

	t.Run("ExactKeyBeatsNesting", func(t *testing.T) {
		t.Parallel()

		ambiguous := map[string]any{
			"a.b": "flat",
			"a":   map[string]any{"b": "nested"},
		}

		value, ok := Get(ambiguous, "a.b")
		if !ok || value != "flat" {
			t.Errorf("Get(a.b) = %v, %v, want flat", value, ok)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		t.Parallel()

		if _, ok := Get(doc, "common.missing"); ok {
			t.Error("expected miss")
		}
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("PrunesEmptyParents", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{
			"foo": map[string]any{"bar": "X"},
			"baz": "Y",
		}

		if !Delete(doc, "foo.bar") {
			t.Fatal("expected deletion")
		}

		if _, ok := doc["foo"]; ok {
			t.Error("expected empty parent foo to be pruned")
		}

		if _, ok := doc["baz"]; !ok {
			t.Error("sibling must survive")
		}
	})

	t.Run("KeepsNonEmptyParents", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{
			"foo": map[string]any{"bar": "X", "qux": "Y"},
		}

		if !Delete(doc, "foo.bar") {
			t.Fatal("expected deletion")
		}

		child, ok := doc["foo"].(map[string]any)
		if !ok || len(child) != 1 {
			t.Errorf("parent should keep remaining key, got %v", doc)
		}
	})

	t.Run("DottedKey", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{
			"common": map[string]any{"error.404": "Not Found", "save": "Save"},
		}

		if !Delete(doc, "common.error.404") {
			t.Fatal("expected deletion of dotted key")
		}

		child := doc["common"].(map[string]any)
		if _, ok := child["error.404"]; ok {
			t.Error("dotted key should be gone")
		}
	})

	t.Run("MissingPathIsNoop", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{"a": "x"}
		if Delete(doc, "b.c") {
			t.Error("expected no deletion")
		}
	})
}
