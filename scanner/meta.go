// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package scanner

import "strings"

// metaUsages extracts configured metadata fields, e.g. `title: 'a.b.c'`
// inside a page-level metadata object literal. A value is taken as a key
// only when it contains at least one dot, which filters out plain display
// strings assigned to the same field names.
func (fsc *fileScan) metaUsages(lineNo int, line string) []Usage {
	re := fsc.scanner.metaFieldRe
	if re == nil {
		return nil
	}

	var usages []Usage

	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		value := ""
		style := StyleSingle

		if m[2] >= 0 {
			value = line[m[2]:m[3]]
		} else {
			value = line[m[4]:m[5]]
			style = StyleDouble
		}

		if !strings.Contains(value, ".") {
			continue
		}

		usages = append(usages, Usage{
			File:        fsc.path,
			Line:        lineNo,
			Column:      m[0] + 1,
			RawKey:      value,
			FullKey:     value,
			CallingForm: FormMetaField,
			QuoteStyle:  style,
		})
	}

	return usages
}
