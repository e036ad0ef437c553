// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package checker

import (
	"fmt"
	"sort"
	"strings"

	"codeberg.org/i18nkit/i18nkit/keypath"
	"codeberg.org/i18nkit/i18nkit/scanner"
)

// Undefined finds translation keys referenced in source text but absent
// from the reference dictionary.
type Undefined struct {
	// Dir holds one compiled dictionary file per language.
	Dir string

	// ReferenceLang is the language whose dictionary defines the key set.
	ReferenceLang string
}

// UndefinedKey is one usage entry whose key matches nothing in the
// reference dictionary.
type UndefinedKey struct {
	// Key is the checked form of the key: the resolved full key, with
	// wildcard markers in place of interpolations for dynamic usages.
	Key   string
	Usage scanner.Usage
}

// UndefinedResult carries the report plus summary statistics.
type UndefinedResult struct {
	Undefined []UndefinedKey

	// CheckedEntries counts usage entries validated against the key set.
	CheckedEntries int

	// SkippedEntries counts entries too ambiguous to validate: their
	// wildcard form is a bare wildcard or starts with one.
	SkippedEntries int
}

// Check validates every usage entry against the reference key set.
//
// Dynamic entries are checked as wildcard patterns where each marker must
// match exactly one key segment. A missing reference dictionary is fatal.
func (c *Undefined) Check(usages map[string][]scanner.Usage) (*UndefinedResult, error) {
	refDoc, _, err := loadReference(c.Dir, c.ReferenceLang)
	if err != nil {
		return nil, err
	}

	defined := keypath.PathSet(refDoc)

	keys := make([]string, 0, len(usages))
	for key := range usages {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	result := &UndefinedResult{}

	for _, key := range keys {
		for _, usage := range usages[key] {
			checked := usage.FullKey
			if usage.IsDynamic {
				checked = keypath.WildcardKey(usage.FullKey)
			}

			if strings.HasPrefix(checked, keypath.Wildcard) {
				result.SkippedEntries++

				continue
			}

			result.CheckedEntries++

			if matchesDefined(checked, defined) {
				continue
			}

			result.Undefined = append(result.Undefined, UndefinedKey{Key: checked, Usage: usage})
		}
	}

	return result, nil
}

// Print writes a human-readable report to stdout.
func (c *Undefined) Print(result *UndefinedResult) {
	for _, entry := range result.Undefined {
		fmt.Printf("%s:%d:%d  undefined key %q\n",
			entry.Usage.File, entry.Usage.Line, entry.Usage.Column, entry.Key)
	}

	fmt.Printf("%d undefined key reference(s) (%d checked, %d skipped as dynamic)\n",
		len(result.Undefined), result.CheckedEntries, result.SkippedEntries)
}

// matchesDefined reports whether key is a literal member of the defined
// set or, when it carries wildcard markers, matches some defined key with
// each marker standing in for one segment.
func matchesDefined(key string, defined map[string]struct{}) bool {
	if _, ok := defined[key]; ok {
		return true
	}

	if !keypath.HasWildcard(key) {
		return false
	}

	return keypath.CompilePattern(key).MatchAnyKey(defined)
}
