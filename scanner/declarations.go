// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package scanner

import "strings"

// declaration records a local binding that resolves keys under a namespace
// when later called as a function. Declarations are positional, not
// lexical: one is visible to every later line of its file.
type declaration struct {
	name      string
	namespace string
	line      int
}

// fileScan holds the per-file state of one scan pass. It is discarded once
// the file's usages have been extracted.
type fileScan struct {
	scanner *Scanner
	path    string
	lines   []string

	decls []declaration

	// consts maps file-local `const x = 'literal'` bindings, used both by
	// the namespace-from-arguments heuristic and by template-key
	// substitution.
	consts map[string]string
}

// collectConstStrings gathers every simple string-literal assignment in the
// file. Later assignments to the same name win.
func (fsc *fileScan) collectConstStrings() {
	for _, line := range fsc.lines {
		for _, m := range fsc.scanner.constStringRe.FindAllStringSubmatch(line, -1) {
			value := m[2]
			if m[3] != "" {
				value = m[3]
			}

			fsc.consts[m[1]] = value
		}
	}
}

// collectDeclarations gathers factory and destructured-composable
// declarations for the whole file, in line order.
func (fsc *fileScan) collectDeclarations() {
	for i, line := range fsc.lines {
		lineNo := i + 1

		if re := fsc.scanner.factoryDeclRe; re != nil {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				fsc.decls = append(fsc.decls, declaration{
					name:      m[1],
					namespace: fsc.namespaceFromArgs(m[2]),
					line:      lineNo,
				})
			}
		}

		if re := fsc.scanner.destructureRe; re != nil {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				for _, piece := range strings.Split(m[1], ",") {
					pm := fsc.scanner.destructedPieceRe.FindStringSubmatch(strings.TrimSpace(piece))
					if pm == nil {
						continue
					}

					name := pm[1]
					if pm[2] != "" {
						name = pm[2]
					}

					fsc.decls = append(fsc.decls, declaration{name: name, line: lineNo})
				}
			}
		}
	}
}

// nearestDecl returns the declaration of name closest at or before line,
// or nil. With shadowing, the latest qualifying line wins.
func (fsc *fileScan) nearestDecl(name string, line int) *declaration {
	var found *declaration

	for i := range fsc.decls {
		decl := &fsc.decls[i]
		if decl.name == name && decl.line <= line {
			found = decl
		}
	}

	return found
}

// namespaceFromArgs guesses the namespace carried by a factory call's raw
// argument text.
//
// Quoted string literals win: the first one containing a "." is taken (more
// likely a namespace than a single word), else the last literal. Without
// any literal, the last bare identifier among the comma-separated arguments
// is resolved against the file-local string-variable map; unresolved means
// no namespace.
func (fsc *fileScan) namespaceFromArgs(args string) string {
	matches := fsc.scanner.quotedLiteralRe.FindAllStringSubmatch(args, -1)
	if len(matches) > 0 {
		last := ""

		for _, m := range matches {
			literal := m[1]
			if m[2] != "" {
				literal = m[2]
			}

			if strings.Contains(literal, ".") {
				return literal
			}

			last = literal
		}

		return last
	}

	parts := strings.Split(args, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		ident := strings.TrimSpace(parts[i])
		if !fsc.scanner.bareIdentifierRe.MatchString(ident) {
			continue
		}

		return fsc.consts[ident]
	}

	return ""
}

// processKey substitutes file-local string constants into ${identifier}
// placeholders of a template-style raw key. The key stays dynamic only if
// an interpolation survives substitution.
func (fsc *fileScan) processKey(raw string) (string, bool) {
	processed := fsc.scanner.interpolationRe.ReplaceAllStringFunc(raw, func(m string) string {
		ident := strings.TrimSpace(m[2 : len(m)-1])
		if !fsc.scanner.bareIdentifierRe.MatchString(ident) {
			return m
		}

		if value, ok := fsc.consts[ident]; ok {
			return value
		}

		return m
	})

	return processed, strings.Contains(processed, "${")
}

// fullKey prepends the namespace to a processed key.
func fullKey(namespace, key string) string {
	if namespace == "" {
		return key
	}

	return namespace + "." + key
}
