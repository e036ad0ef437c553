// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package scanner

import "strings"

// attributeUsages extracts keypath-style template attributes from one
// line. The captured key is already the full key; attribute usages carry
// no namespace.
//
// Two forms are recognized: static (`attr="literal"`, key used verbatim)
// and dynamic (`:attr="..."`). A dynamic value that is a single-quoted
// literal is a static key; any other expression becomes a template-style
// key wrapping that expression, which substitution may still resolve.
func (fsc *fileScan) attributeUsages(lineNo int, line string) []Usage {
	s := fsc.scanner
	if s.attrStaticRe == nil {
		return nil
	}

	var usages []Usage

	for _, m := range s.attrDynamicRe.FindAllStringSubmatchIndex(line, -1) {
		inner := line[m[2]:m[3]]

		var (
			raw       string
			style     QuoteStyle
			processed string
			dynamic   bool
		)

		if len(inner) >= 2 && strings.HasPrefix(inner, "'") && strings.HasSuffix(inner, "'") {
			raw, style = inner[1:len(inner)-1], StyleSingle
			processed = raw
		} else {
			raw, style = "${"+inner+"}", StyleTemplate
			processed, dynamic = fsc.processKey(raw)
		}

		usages = append(usages, Usage{
			File:        fsc.path,
			Line:        lineNo,
			Column:      m[0] + 1,
			RawKey:      raw,
			FullKey:     processed,
			CallingForm: FormAttribute,
			QuoteStyle:  style,
			IsDynamic:   dynamic,
		})
	}

	for _, m := range s.attrStaticRe.FindAllStringSubmatchIndex(line, -1) {
		// A static match immediately preceded by a colon is the right-hand
		// side of a dynamic binding already handled above.
		start := m[0]
		if start > 0 && line[start-1] == ':' {
			continue
		}

		usages = append(usages, Usage{
			File:        fsc.path,
			Line:        lineNo,
			Column:      start + 1,
			RawKey:      line[m[2]:m[3]],
			FullKey:     line[m[2]:m[3]],
			CallingForm: FormAttribute,
			QuoteStyle:  StyleDouble,
		})
	}

	return usages
}
