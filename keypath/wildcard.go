// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package keypath

import (
	"regexp"
	"strings"
	"sync"
)

// Wildcard is the single-segment wildcard marker. In a wildcard key
// pattern, each marker matches exactly one dot-delimited segment.
const Wildcard = "*"

// interpolationRe matches one ${...} interpolation in a template-style key.
var interpolationRe = regexp.MustCompile(`\$\{[^}]*\}`)

// WildcardKey replaces every ${...} interpolation in key with the wildcard
// marker, turning a dynamically constructed key into a checkable pattern.
func WildcardKey(key string) string {
	return interpolationRe.ReplaceAllString(key, Wildcard)
}

// Pattern is a compiled wildcard key pattern.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*Pattern)
)

// CompilePattern compiles a wildcard key pattern. Compiled patterns are
// cached for the lifetime of the process.
func CompilePattern(raw string) *Pattern {
	patternMu.Lock()
	defer patternMu.Unlock()

	if p, ok := patternCache[raw]; ok {
		return p
	}

	parts := strings.Split(raw, Wildcard)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	p := &Pattern{
		raw: raw,
		re:  regexp.MustCompile("^" + strings.Join(parts, `[^.]+`) + "$"),
	}

	patternCache[raw] = p

	return p
}

// String returns the raw pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether key matches the pattern, each wildcard marker
// standing in for exactly one dot-free segment.
func (p *Pattern) Match(key string) bool {
	return p.re.MatchString(key)
}

// MatchAnyKey reports whether any key in the set matches the pattern.
func (p *Pattern) MatchAnyKey(keys map[string]struct{}) bool {
	for key := range keys {
		if p.Match(key) {
			return true
		}
	}

	return false
}

// HasWildcard reports whether key contains at least one wildcard marker.
func HasWildcard(key string) bool {
	return strings.Contains(key, Wildcard)
}
