// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package merger compiles per-directory translation fragments into one flat
dictionary per language, and exposes the compilation as a build-pipeline
plugin with file-watch integration.
*/
package merger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/i18nkit/i18nkit/keypath"
	"codeberg.org/i18nkit/i18nkit/namespace"
)

const (
	readConcurrency      = 8
	outputDirPermissions = 0o755
)

// ErrFragmentsRewritten aborts a merge run whose sort pre-pass changed at
// least one fragment on disk. Merging would otherwise read a half-rewritten
// fragment set within the same pass; the caller must re-trigger.
var ErrFragmentsRewritten = errors.New("fragment files were rewritten, merge aborted")

// Root is one configured source root. Prefix, when set, is prepended to
// every namespace derived under the root.
type Root struct {
	Path   string
	Prefix string
}

// Fragment is one discovered translation fragment file.
type Fragment struct {
	Path      string
	Namespace string
}

// Merger compiles fragments for a fixed set of languages.
type Merger struct {
	Roots     []Root
	Languages []string
	OutputDir string

	// LocaleDirSegment is the routing placeholder directory stripped during
	// namespace resolution.
	LocaleDirSegment string

	// SortFragments enables the pre-pass that rewrites fragments with
	// sorted keys before merging.
	SortFragments bool
}

// Fragments discovers every fragment file for lang across all roots, with
// its namespace resolved. Results are sorted by path so enumeration order
// is stable on any file system.
func (m *Merger) Fragments(lang string) ([]Fragment, error) {
	filename := lang + ".json"

	var fragments []Fragment

	for _, root := range m.Roots {
		err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if d.IsDir() {
				name := d.Name()
				if name == "node_modules" || (path != root.Path && strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if d.Name() == filename {
				fragments = append(fragments, Fragment{
					Path:      path,
					Namespace: namespace.Resolve(path, root.Path, root.Prefix, m.LocaleDirSegment),
				})
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk source root %s: %w", root.Path, err)
		}
	}

	sort.Slice(fragments, func(i, j int) bool { return fragments[i].Path < fragments[j].Path })

	return fragments, nil
}

// Merge compiles the dictionary for one language and writes it to
// <OutputDir>/<lang>.json.
//
// Fragments with an empty namespace deep-merge at the document root, later
// fragments winning on leaf collisions. Fragments with a namespace are
// overlaid shallowly at that namespace's path: within one namespace,
// same-named second-level keys from two files overwrite each other in
// enumeration order. The shallow overlay is a documented limitation kept
// for compatibility, not a bug.
func (m *Merger) Merge(lang string) error {
	if m.SortFragments {
		changed, err := m.sortFragments(lang)
		if err != nil {
			return err
		}

		if changed > 0 {
			return fmt.Errorf("%w: %d file(s) for language %s", ErrFragmentsRewritten, changed, lang)
		}
	}

	fragments, err := m.Fragments(lang)
	if err != nil {
		return err
	}

	docs := make([]map[string]any, len(fragments))

	var g errgroup.Group

	g.SetLimit(readConcurrency)

	for i, fragment := range fragments {
		i, fragment := i, fragment

		g.Go(func() error {
			doc, err := keypath.ReadDocument(fragment.Path)
			if err != nil {
				return err
			}

			docs[i] = doc

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	tree := make(map[string]any)

	for i, fragment := range fragments {
		if fragment.Namespace == "" {
			deepMerge(tree, docs[i])

			continue
		}

		node := ensurePath(tree, strings.Split(fragment.Namespace, "."))
		for key, value := range docs[i] {
			node[key] = value
		}
	}

	if err := os.MkdirAll(m.OutputDir, outputDirPermissions); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outPath := filepath.Join(m.OutputDir, lang+".json")
	if err := keypath.WriteDocument(outPath, tree); err != nil {
		return err
	}

	log.Debug().
		Str("language", lang).
		Int("fragments", len(fragments)).
		Str("output", outPath).
		Msg("Compiled dictionary")

	return nil
}

// MergeAll compiles the dictionary for every configured language.
func (m *Merger) MergeAll() error {
	for _, lang := range m.Languages {
		if err := m.Merge(lang); err != nil {
			return err
		}
	}

	return nil
}

// sortFragments rewrites each fragment of lang with sorted keys, returning
// how many files actually changed on disk.
func (m *Merger) sortFragments(lang string) (int, error) {
	fragments, err := m.Fragments(lang)
	if err != nil {
		return 0, err
	}

	changed := 0

	for _, fragment := range fragments {
		original, err := os.ReadFile(fragment.Path) // #nosec G304 -- fragments come from configured roots
		if err != nil {
			return changed, fmt.Errorf("failed to read fragment: %w", err)
		}

		doc, err := keypath.ReadDocument(fragment.Path)
		if err != nil {
			return changed, err
		}

		sorted, err := keypath.SortedJSON(doc)
		if err != nil {
			return changed, err
		}

		if bytes.Equal(original, sorted) {
			continue
		}

		if err := keypath.WriteDocument(fragment.Path, doc); err != nil {
			return changed, err
		}

		changed++

		log.Info().Str("file", fragment.Path).Msg("Rewrote fragment with sorted keys")
	}

	return changed, nil
}

// deepMerge merges src into dst recursively. Nested objects merge; any
// other collision lets the later fragment's value win.
func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		srcChild, srcIsMap := value.(map[string]any)

		dstChild, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			deepMerge(dstChild, srcChild)

			continue
		}

		dst[key] = value
	}
}

// ensurePath walks segments from the tree root, creating empty objects as
// needed, and returns the map at the end of the path. A non-object value in
// the way is replaced by an object.
func ensurePath(tree map[string]any, segments []string) map[string]any {
	node := tree

	for _, segment := range segments {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}

		node = child
	}

	return node
}
