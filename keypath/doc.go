// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package keypath works with dotted key paths over nested translation
documents.

A translation document is a JSON object decoded as map[string]any. String
and array values are leaves; arrays are opaque and never descended into. A
key path joins the map keys from the document root to a leaf with ".".

Map keys may themselves contain dots ("error.404"), so a dotted path does
not uniquely determine its segment boundaries. Get and Delete resolve that
ambiguity by preferring an exact map key at each level before trying split
points, longest first.
*/
package keypath
