// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package checker

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/i18nkit/i18nkit/keypath"
	"codeberg.org/i18nkit/i18nkit/merger"
	"codeberg.org/i18nkit/i18nkit/scanner"
)

// unusedFixture compiles a small fragment tree and returns a checker wired
// to the same merger, mirroring production wiring.
func unusedFixture(t *testing.T) (*Unused, string) {
	t.Helper()

	dir := t.TempDir()
	root := filepath.Join(dir, "src")

	writeFragmentFile := func(rel, content string) {
		t.Helper()

		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	writeFragmentFile("en.json", `{"title":"T"}`)
	writeFragmentFile(filepath.Join("common", "en.json"), `{"save":"Save","cancel":"Cancel","stale":"Old"}`)
	writeFragmentFile(filepath.Join("pages", "[id]", "en.json"), `{"heading":"H"}`)

	m := &merger.Merger{
		Roots:            []merger.Root{{Path: root}},
		Languages:        []string{"en"},
		OutputDir:        filepath.Join(dir, "out"),
		LocaleDirSegment: "[locale]",
	}

	if err := m.MergeAll(); err != nil {
		t.Fatalf("failed to compile fixture: %v", err)
	}

	c := &Unused{
		Dir:           m.OutputDir,
		ReferenceLang: "en",
		Merger:        m,
		Whitelist:     []string{"pages"},
	}

	return c, root
}

func TestUnusedCheck(t *testing.T) {
	t.Parallel()

	c, root := unusedFixture(t)

	usages := map[string][]scanner.Usage{
		"common.save":  {{FullKey: "common.save"}},
		"common.c${x}": {{FullKey: "common.c${x}", IsDynamic: true}},
	}

	result, err := c.Check(usages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalDefined != 5 {
		t.Errorf("TotalDefined = %d, want 5", result.TotalDefined)
	}

	if result.Whitelisted != 1 {
		t.Errorf("Whitelisted = %d, want pages._id_.heading covered", result.Whitelisted)
	}

	// common.save is used directly, common.cancel through the wildcard
	// common.c*, pages._id_.heading is whitelisted.
	if result.TotalUnused != 2 {
		t.Errorf("TotalUnused = %d, want 2", result.TotalUnused)
	}

	if len(result.Unattributed) != 0 {
		t.Errorf("Unattributed = %v, want none", result.Unattributed)
	}

	rootGroup := result.Groups[filepath.Join(root, "en.json")]
	if rootGroup == nil || len(rootGroup.Keys) != 1 || rootGroup.Keys[0].LocalPath != "title" {
		t.Errorf("root group = %+v", rootGroup)
	}

	commonGroup := result.Groups[filepath.Join(root, "common", "en.json")]
	if commonGroup == nil || commonGroup.Namespace != "common" {
		t.Fatalf("common group = %+v", commonGroup)
	}

	if len(commonGroup.Keys) != 1 || commonGroup.Keys[0].FullKey != "common.stale" ||
		commonGroup.Keys[0].LocalPath != "stale" {
		t.Errorf("common group keys = %+v", commonGroup.Keys)
	}
}

func TestUnusedCheckUnattributed(t *testing.T) {
	t.Parallel()

	c, _ := unusedFixture(t)

	// A key present in the compiled dictionary but absent from every
	// fragment signals an inconsistency, not a deletable key.
	outPath := filepath.Join(c.Dir, "en.json")

	doc, err := keypath.ReadDocument(outPath)
	if err != nil {
		t.Fatal(err)
	}

	doc["zz_ghost"] = "X"
	if err := keypath.WriteDocument(outPath, doc); err != nil {
		t.Fatal(err)
	}

	// Remove the root-level fragment so the empty namespace has no owner.
	rootFragment := filepath.Join(c.Merger.Roots[0].Path, "en.json")
	if err := os.Remove(rootFragment); err != nil {
		t.Fatal(err)
	}

	result, err := c.Check(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false

	for _, key := range result.Unattributed {
		if key == "zz_ghost" {
			found = true
		}
	}

	if !found {
		t.Errorf("Unattributed = %v, want zz_ghost", result.Unattributed)
	}
}

func TestUnusedFix(t *testing.T) {
	t.Parallel()

	c, root := unusedFixture(t)

	usages := map[string][]scanner.Usage{
		"common.save":   {{FullKey: "common.save"}},
		"common.cancel": {{FullKey: "common.cancel"}},
	}

	result, err := c.Check(usages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changed, err := c.Fix(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if changed != 2 {
		t.Errorf("changed = %d, want 2 rewritten fragments", changed)
	}

	commonDoc, err := keypath.ReadDocument(filepath.Join(root, "common", "en.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := commonDoc["stale"]; ok {
		t.Error("stale must be deleted from its fragment")
	}

	for _, key := range []string{"save", "cancel"} {
		if _, ok := commonDoc[key]; !ok {
			t.Errorf("%s must survive the fix", key)
		}
	}

	rootDoc, err := keypath.ReadDocument(filepath.Join(root, "en.json"))
	if err != nil {
		t.Fatal(err)
	}

	if len(rootDoc) != 0 {
		t.Errorf("root fragment should be emptied, got %v", rootDoc)
	}
}
