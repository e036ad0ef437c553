// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package scanner finds translation-key references in application source
text.

The scanner is deliberately not a parser. Source files are treated as
line-oriented text and matched against a handful of hand-built grammars:
namespace-aware factory declarations, destructured composables, translation
call sites, keypath-style template attributes, and page-metadata fields.
Lines that match no grammar are silently skipped; completeness is traded
for not requiring a real lexer per source dialect.

Scoping is positional, not lexical: a declaration is visible to every later
line of the same file, and a usage resolves against the nearest declaration
at or before its own line.

All recognized function, method, and attribute names are configuration
data, not built-in keywords.
*/
package scanner
