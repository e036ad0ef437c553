// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package checker

import (
	"bytes"
	"encoding/json"
	"strings"
)

const sentinelPrefix = "TODO: `"

// sentinelFor builds the placeholder value written in place of a missing
// or stale translation. The current reference text is embedded
// backtick-quoted so translators always see the source text; non-string
// reference leaves (arrays in particular) are embedded JSON-encoded.
func sentinelFor(refValue any) string {
	if s, ok := refValue.(string); ok {
		return sentinelPrefix + s + "`"
	}

	return sentinelPrefix + compactJSON(refValue) + "`"
}

// isSentinel reports whether value is a placeholder written by a previous
// fix run.
func isSentinel(value string) bool {
	return strings.HasPrefix(value, sentinelPrefix)
}

// compactJSON renders value as single-line JSON without HTML escaping.
func compactJSON(value any) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		return ""
	}

	return strings.TrimSuffix(buf.String(), "\n")
}
