// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package checker

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/i18nkit/i18nkit/keypath"
)

// Alignment checks that every non-reference dictionary's key set equals
// the reference dictionary's key set.
type Alignment struct {
	// Dir holds one compiled dictionary file per language.
	Dir string

	// ReferenceLang is the language whose dictionary is the source of truth.
	ReferenceLang string
}

// AlignmentResult describes one non-reference dictionary file.
type AlignmentResult struct {
	File     string
	Language string
	Missing  []string
	Extra    []string
	Total    int
}

// Aligned reports whether the file's key set matches the reference exactly.
func (r *AlignmentResult) Aligned() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Check compares every other dictionary in Dir against the reference key
// set. A missing reference dictionary is fatal.
func (a *Alignment) Check() ([]AlignmentResult, error) {
	refDoc, refPath, err := loadReference(a.Dir, a.ReferenceLang)
	if err != nil {
		return nil, err
	}

	refKeys := keypath.PathSet(refDoc)

	paths, err := a.otherDictionaries(refPath)
	if err != nil {
		return nil, err
	}

	results := make([]AlignmentResult, 0, len(paths))

	for _, path := range paths {
		doc, err := keypath.ReadDocument(path)
		if err != nil {
			return nil, err
		}

		keys := keypath.PathSet(doc)

		result := AlignmentResult{
			File:     path,
			Language: strings.TrimSuffix(filepath.Base(path), ".json"),
			Total:    len(keys),
		}

		for key := range refKeys {
			if _, ok := keys[key]; !ok {
				result.Missing = append(result.Missing, key)
			}
		}

		for key := range keys {
			if _, ok := refKeys[key]; !ok {
				result.Extra = append(result.Extra, key)
			}
		}

		sort.Strings(result.Missing)
		sort.Strings(result.Extra)

		results = append(results, result)
	}

	return results, nil
}

// Fix rewrites the reference dictionary with sorted keys, then rebuilds
// every non-reference dictionary in sorted reference order: present values
// are kept, absent or sentinel values are stamped with a TODO placeholder
// carrying the current reference text, and extra keys disappear along with
// any parents left empty. It returns how many files changed.
//
// Failures on individual files are logged and skipped; one bad file must
// not abort fixing the rest.
func (a *Alignment) Fix() (int, error) {
	refDoc, refPath, err := loadReference(a.Dir, a.ReferenceLang)
	if err != nil {
		return 0, err
	}

	changed := 0

	wrote, err := writeIfChanged(refPath, refDoc)
	if err != nil {
		return changed, err
	}

	if wrote {
		changed++
	}

	paths, err := a.otherDictionaries(refPath)
	if err != nil {
		return changed, err
	}

	for _, path := range paths {
		doc, err := keypath.ReadDocument(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Skipping unreadable dictionary")

			continue
		}

		wrote, err := writeIfChanged(path, rebuild(refDoc, doc))
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Failed to rewrite dictionary")

			continue
		}

		if wrote {
			changed++

			log.Info().Str("file", path).Msg("Realigned dictionary")
		}
	}

	return changed, nil
}

// Print writes a human-readable alignment report to stdout.
func (a *Alignment) Print(results []AlignmentResult) {
	drifted := 0

	for _, result := range results {
		if result.Aligned() {
			fmt.Printf("%s: aligned (%d keys)\n", result.Language, result.Total)

			continue
		}

		drifted++

		fmt.Printf("%s: %d missing, %d extra (%d keys)\n",
			result.Language, len(result.Missing), len(result.Extra), result.Total)

		for _, key := range result.Missing {
			fmt.Printf("  missing  %s\n", key)
		}

		for _, key := range result.Extra {
			fmt.Printf("  extra    %s\n", key)
		}
	}

	if drifted == 0 {
		fmt.Printf("All %d language file(s) aligned with %s\n", len(results), a.ReferenceLang)
	} else {
		fmt.Printf("%d of %d language file(s) out of alignment with %s\n", drifted, len(results), a.ReferenceLang)
	}
}

// otherDictionaries lists every dictionary file in Dir except the
// reference, sorted by path.
func (a *Alignment) otherDictionaries(refPath string) ([]string, error) {
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary directory: %w", err)
	}

	var paths []string

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(a.Dir, entry.Name())
		if path == refPath {
			continue
		}

		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths, nil
}

// rebuild walks the reference document and produces the realigned version
// of target.
//
// Per reference key: nested objects recurse; arrays are copied verbatim
// when the target has an array there, else sentineled with the JSON-encoded
// reference array; leaf values are copied when present and not already a
// sentinel, else sentineled with the current reference text so translators
// always see current source text.
func rebuild(ref, target map[string]any) map[string]any {
	out := make(map[string]any, len(ref))

	for key, refValue := range ref {
		targetValue, present := target[key]

		switch rv := refValue.(type) {
		case map[string]any:
			child, _ := targetValue.(map[string]any)
			if child == nil {
				child = make(map[string]any)
			}

			out[key] = rebuild(rv, child)
		case []any:
			if arr, ok := targetValue.([]any); ok {
				out[key] = arr
			} else {
				out[key] = sentinelFor(refValue)
			}
		default:
			if !present {
				out[key] = sentinelFor(refValue)

				continue
			}

			// A nested object where the reference has a leaf would smuggle
			// extra keys through the rebuild; stamp it instead.
			if _, isMap := targetValue.(map[string]any); isMap {
				out[key] = sentinelFor(refValue)

				continue
			}

			// Existing sentinels are re-stamped so they carry the current
			// reference text.
			if s, ok := targetValue.(string); ok && isSentinel(s) {
				out[key] = sentinelFor(refValue)

				continue
			}

			out[key] = targetValue
		}
	}

	return out
}

// writeIfChanged writes doc to path in compiled-dictionary format unless
// the rendered bytes already match the file's content.
func writeIfChanged(path string, doc map[string]any) (bool, error) {
	rendered, err := keypath.SortedJSON(doc)
	if err != nil {
		return false, err
	}

	original, err := os.ReadFile(path) // #nosec G304 -- dictionaries come from the configured output dir
	if err == nil && bytes.Equal(original, rendered) {
		return false, nil
	}

	if err := keypath.WriteDocument(path, doc); err != nil {
		return false, err
	}

	return true, nil
}
