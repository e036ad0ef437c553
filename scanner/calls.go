// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package scanner

import "strings"

// callUsages extracts translation call sites from one line.
//
// A candidate is any `callee(firstArg)` where the first argument is a
// quoted string, a backtick template literal, or a bare variable reference
// (handled as the template literal `${name}`). The candidate is emitted
// only when a namespace can be resolved for the callee: the nearest
// preceding declaration of its base identifier, or membership in the
// configured global-function or library-method name sets.
func (fsc *fileScan) callUsages(lineNo int, line string) []Usage {
	var usages []Usage

	for _, m := range fsc.scanner.callRe.FindAllStringSubmatchIndex(line, -1) {
		callee := line[m[2]:m[3]]

		var (
			raw   string
			style QuoteStyle
		)

		switch {
		case m[4] >= 0:
			raw, style = line[m[4]:m[5]], StyleDouble
		case m[6] >= 0:
			raw, style = line[m[6]:m[7]], StyleSingle
		case m[8] >= 0:
			raw, style = line[m[8]:m[9]], StyleTemplate
		default:
			raw, style = "${"+line[m[10]:m[11]]+"}", StyleVariable
		}

		dotted := strings.Contains(callee, ".")

		base := callee
		if dotted {
			base = callee[:strings.Index(callee, ".")]

			last := callee[strings.LastIndex(callee, ".")+1:]
			if _, ok := fsc.scanner.methodNames[last]; !ok {
				continue
			}
		}

		var namespace string

		if decl := fsc.nearestDecl(base, lineNo); decl != nil {
			namespace = decl.namespace
		} else if !dotted {
			_, isGlobal := fsc.scanner.globalFunctions[callee]

			_, isMethod := fsc.scanner.methodNames[callee]
			if !isGlobal && !isMethod {
				continue
			}
		}

		processed, dynamic := raw, false
		if style == StyleTemplate || style == StyleVariable {
			processed, dynamic = fsc.processKey(raw)
		}

		usages = append(usages, Usage{
			File:        fsc.path,
			Line:        lineNo,
			Column:      m[0] + 1,
			RawKey:      raw,
			FullKey:     fullKey(namespace, processed),
			Namespace:   namespace,
			CallingForm: FormCall,
			QuoteStyle:  style,
			IsDynamic:   dynamic,
		})
	}

	return usages
}
