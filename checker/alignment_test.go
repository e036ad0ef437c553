// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/i18nkit/i18nkit/keypath"
)

func writeDictionary(t *testing.T, dir, lang, content string) string {
	t.Helper()

	path := filepath.Join(dir, lang+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestAlignmentCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeDictionary(t, dir, "en", `{"common":{"save":"Save","cancel":"Cancel"}}`)
	writeDictionary(t, dir, "de", `{"common":{"save":"Speichern","extra":"X"}}`)
	writeDictionary(t, dir, "fr", `{"common":{"save":"Enregistrer","cancel":"Annuler"}}`)

	a := &Alignment{Dir: dir, ReferenceLang: "en"}

	results, err := a.Check()
	require.NoError(t, err)
	require.Len(t, results, 2)

	// otherDictionaries sorts by path, so de comes first.
	de := results[0]
	assert.Equal(t, "de", de.Language)
	assert.False(t, de.Aligned())
	assert.Equal(t, []string{"common.cancel"}, de.Missing)
	assert.Equal(t, []string{"common.extra"}, de.Extra)

	fr := results[1]
	assert.Equal(t, "fr", fr.Language)
	assert.True(t, fr.Aligned())
	assert.Equal(t, 2, fr.Total)
}

func TestAlignmentCheckMissingReference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDictionary(t, dir, "de", `{}`)

	a := &Alignment{Dir: dir, ReferenceLang: "en"}

	_, err := a.Check()
	require.ErrorIs(t, err, ErrReferenceMissing)
}

func TestAlignmentFix(t *testing.T) {
	t.Parallel()

	t.Run("RealignsDriftedFile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		writeDictionary(t, dir, "en", `{"title":"Hello","nested":{"keep":"Keep"}}`)
		dePath := writeDictionary(t, dir, "de", `{"title":"Hallo","foo":"stale","nested":{}}`)

		a := &Alignment{Dir: dir, ReferenceLang: "en"}

		changed, err := a.Fix()
		require.NoError(t, err)
		assert.Positive(t, changed)

		doc, err := keypath.ReadDocument(dePath)
		require.NoError(t, err)

		value, ok := keypath.Get(doc, "title")
		require.True(t, ok)
		assert.Equal(t, "Hallo", value, "existing translations survive")

		_, ok = keypath.Get(doc, "foo")
		assert.False(t, ok, "extra keys are removed")

		value, ok = keypath.Get(doc, "nested.keep")
		require.True(t, ok)
		assert.Equal(t, "TODO: `Keep`", value, "missing keys are stamped with the reference text")
	})

	t.Run("RestampsStaleSentinels", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		writeDictionary(t, dir, "en", `{"greeting":"Good morning"}`)
		dePath := writeDictionary(t, dir, "de", "{\"greeting\":\"TODO: `Good day`\"}")

		a := &Alignment{Dir: dir, ReferenceLang: "en"}

		_, err := a.Fix()
		require.NoError(t, err)

		doc, err := keypath.ReadDocument(dePath)
		require.NoError(t, err)

		value, _ := keypath.Get(doc, "greeting")
		assert.Equal(t, "TODO: `Good morning`", value)
	})

	t.Run("ArraysCopiedWhenPresent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		writeDictionary(t, dir, "en", `{"steps":["one","two"],"tags":["a"]}`)
		dePath := writeDictionary(t, dir, "de", `{"steps":["eins","zwei"]}`)

		a := &Alignment{Dir: dir, ReferenceLang: "en"}

		_, err := a.Fix()
		require.NoError(t, err)

		doc, err := keypath.ReadDocument(dePath)
		require.NoError(t, err)

		steps, ok := doc["steps"].([]any)
		require.True(t, ok)
		assert.Equal(t, []any{"eins", "zwei"}, steps, "translated arrays survive verbatim")

		tags, _ := keypath.Get(doc, "tags")
		assert.Equal(t, "TODO: `[\"a\"]`", tags, "missing arrays are stamped with the encoded reference")
	})

	t.Run("LeafOverNestedObject", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		writeDictionary(t, dir, "en", `{"label":"Label"}`)
		dePath := writeDictionary(t, dir, "de", `{"label":{"smuggled":"X"}}`)

		a := &Alignment{Dir: dir, ReferenceLang: "en"}

		_, err := a.Fix()
		require.NoError(t, err)

		doc, err := keypath.ReadDocument(dePath)
		require.NoError(t, err)

		value, _ := keypath.Get(doc, "label")
		assert.Equal(t, "TODO: `Label`", value, "object in place of a leaf is replaced, not kept")
	})

	t.Run("SecondRunIsNoop", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		writeDictionary(t, dir, "en", `{"title":"Hello"}`)
		writeDictionary(t, dir, "de", `{"stale":"X"}`)

		a := &Alignment{Dir: dir, ReferenceLang: "en"}

		_, err := a.Fix()
		require.NoError(t, err)

		changed, err := a.Fix()
		require.NoError(t, err)
		assert.Zero(t, changed, "a fixed tree must not change again")

		results, err := a.Check()
		require.NoError(t, err)

		for _, result := range results {
			assert.True(t, result.Aligned(), "%s must be aligned after fix", result.Language)
		}
	})
}
