// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package checker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/i18nkit/i18nkit/keypath"
	"codeberg.org/i18nkit/i18nkit/merger"
	"codeberg.org/i18nkit/i18nkit/scanner"
)

// Unused finds keys defined in the reference dictionary that no usage
// entry references, and can remove them from their owning fragment files.
type Unused struct {
	// Dir holds one compiled dictionary file per language.
	Dir string

	// ReferenceLang is the language whose dictionary defines the key set.
	ReferenceLang string

	// Merger supplies fragment discovery. Sharing it guarantees the
	// namespace-to-file map here agrees byte-for-byte with the merger's own
	// namespace computation.
	Merger *merger.Merger

	// Whitelist lists key-path prefixes never reported as unused. Prefixes
	// match on dot boundaries or exactly.
	Whitelist []string
}

// UnusedKey is one unused defined key with its location inside the owning
// fragment file.
type UnusedKey struct {
	FullKey   string
	LocalPath string
}

// FileGroup collects the unused keys that physically live in one fragment
// file.
type FileGroup struct {
	Namespace string
	Keys      []UnusedKey
}

// UnusedResult carries the report plus summary statistics.
type UnusedResult struct {
	// Groups maps a fragment file path to its unused keys.
	Groups map[string]*FileGroup

	// Unattributed lists unused keys no fragment file could be found for.
	// Such keys signal a mapping inconsistency with the merger, not a real
	// unused key, and are excluded from Fix.
	Unattributed []string

	TotalDefined int
	TotalUnused  int
	Whitelisted  int
}

// Check computes the unused-key set.
//
// The used-key set is built from scanner output: keys with a dynamic usage
// are converted to their wildcard form (entries whose form starts with a
// wildcard are unvalidatable and dropped). A defined key is unused when it
// is neither a literal member of the used set, nor matched by any wildcard
// used key, nor covered by the whitelist.
func (c *Unused) Check(usages map[string][]scanner.Usage) (*UnusedResult, error) {
	refDoc, _, err := loadReference(c.Dir, c.ReferenceLang)
	if err != nil {
		return nil, err
	}

	fragments, err := c.Merger.Fragments(c.ReferenceLang)
	if err != nil {
		return nil, err
	}

	// Later fragments win in the map, mirroring the merger's overlay order.
	namespaceFiles := make(map[string]string, len(fragments))
	namespaceOf := make(map[string]string, len(fragments))

	for _, fragment := range fragments {
		namespaceFiles[fragment.Namespace] = fragment.Path
		namespaceOf[fragment.Path] = fragment.Namespace
	}

	used := make(map[string]struct{})

	var wildcards []*keypath.Pattern

	for key, entries := range usages {
		dynamic := false

		for _, usage := range entries {
			if usage.IsDynamic {
				dynamic = true

				break
			}
		}

		if !dynamic {
			used[key] = struct{}{}

			continue
		}

		wildcardKey := keypath.WildcardKey(key)
		if strings.HasPrefix(wildcardKey, keypath.Wildcard) {
			continue
		}

		wildcards = append(wildcards, keypath.CompilePattern(wildcardKey))
	}

	result := &UnusedResult{Groups: make(map[string]*FileGroup)}

	defined := keypath.Paths(refDoc)
	result.TotalDefined = len(defined)

	for _, key := range defined {
		if _, ok := used[key]; ok {
			continue
		}

		if c.whitelisted(key) {
			result.Whitelisted++

			continue
		}

		if matchesAnyWildcard(key, wildcards) {
			continue
		}

		result.TotalUnused++

		file, localPath, ok := attribute(key, namespaceFiles)
		if !ok {
			result.Unattributed = append(result.Unattributed, key)

			log.Warn().
				Str("key", key).
				Msg("Logic error: unused key maps to no fragment file")

			continue
		}

		group := result.Groups[file]
		if group == nil {
			group = &FileGroup{Namespace: namespaceOf[file]}
			result.Groups[file] = group
		}

		group.Keys = append(group.Keys, UnusedKey{FullKey: key, LocalPath: localPath})
	}

	return result, nil
}

// Fix deletes every attributed unused key from its owning fragment file,
// pruning parents left empty, and rewrites only files that changed. It
// returns how many files were rewritten. Per-file failures are logged and
// skipped.
func (c *Unused) Fix(result *UnusedResult) (int, error) {
	files := make([]string, 0, len(result.Groups))
	for file := range result.Groups {
		files = append(files, file)
	}

	sort.Strings(files)

	changed := 0

	for _, file := range files {
		doc, err := keypath.ReadDocument(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Skipping unreadable fragment")

			continue
		}

		removed := 0

		for _, key := range result.Groups[file].Keys {
			if keypath.Delete(doc, key.LocalPath) {
				removed++
			}
		}

		if removed == 0 {
			continue
		}

		if err := keypath.WriteDocument(file, doc); err != nil {
			log.Error().Err(err).Str("file", file).Msg("Failed to rewrite fragment")

			continue
		}

		changed++

		log.Info().
			Str("file", file).
			Int("removed", removed).
			Msg("Removed unused keys from fragment")
	}

	return changed, nil
}

// Print writes a human-readable report to stdout.
func (c *Unused) Print(result *UnusedResult) {
	files := make([]string, 0, len(result.Groups))
	for file := range result.Groups {
		files = append(files, file)
	}

	sort.Strings(files)

	for _, file := range files {
		group := result.Groups[file]

		fmt.Printf("%s (namespace %q):\n", file, group.Namespace)

		for _, key := range group.Keys {
			fmt.Printf("  unused  %s\n", key.FullKey)
		}
	}

	for _, key := range result.Unattributed {
		fmt.Printf("warning: %s is unused but maps to no fragment file\n", key)
	}

	fmt.Printf("%d unused key(s) of %d defined (%d whitelisted)\n",
		result.TotalUnused, result.TotalDefined, result.Whitelisted)
}

// whitelisted reports whether key is covered by a whitelist prefix, either
// exactly or on a dot boundary.
func (c *Unused) whitelisted(key string) bool {
	for _, prefix := range c.Whitelist {
		if key == prefix || strings.HasPrefix(key, prefix+".") {
			return true
		}
	}

	return false
}

func matchesAnyWildcard(key string, wildcards []*keypath.Pattern) bool {
	for _, pattern := range wildcards {
		if pattern.Match(key) {
			return true
		}
	}

	return false
}

// attribute finds the fragment file owning key by trying successively
// shorter namespace candidates built from the key's segments, longest
// first, down to the empty namespace. The key's local path is the part
// left after stripping the matched namespace.
func attribute(key string, namespaceFiles map[string]string) (string, string, bool) {
	segments := strings.Split(key, ".")

	for i := len(segments) - 1; i >= 0; i-- {
		ns := strings.Join(segments[:i], ".")

		file, ok := namespaceFiles[ns]
		if !ok {
			continue
		}

		return file, strings.Join(segments[i:], "."), true
	}

	return "", "", false
}
