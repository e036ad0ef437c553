// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// scanConcurrency bounds the number of files read at once during a scan.
const scanConcurrency = 8

// CallingForm describes the textual shape a key reference was found in.
type CallingForm string

// Recognized calling forms.
const (
	FormCall      CallingForm = "call"
	FormAttribute CallingForm = "attribute"
	FormMetaField CallingForm = "meta"
)

// QuoteStyle describes how the raw key was quoted at the reference site.
type QuoteStyle string

// Recognized quote styles. StyleVariable marks a bare variable reference,
// which is handled as the one-segment template literal `${name}`.
const (
	StyleDouble   QuoteStyle = "double"
	StyleSingle   QuoteStyle = "single"
	StyleTemplate QuoteStyle = "template"
	StyleVariable QuoteStyle = "variable"
)

// Usage is one concrete occurrence of a translation-key reference.
type Usage struct {
	File        string
	Line        int
	Column      int
	RawKey      string
	FullKey     string
	Namespace   string
	CallingForm CallingForm
	QuoteStyle  QuoteStyle
	IsDynamic   bool
}

// Config lists the names the scanner recognizes. All sets are plain
// configuration data.
type Config struct {
	// TranslationFactories are namespace-aware factory functions, matched in
	// `const t = useTranslations('ns')` style declarations.
	TranslationFactories []string

	// Composables are namespace-less composable functions whose returned
	// bindings are destructured, e.g. `const { t, te: exists } = useHelpers()`.
	Composables []string

	// GlobalFunctions are bare ambient translation functions callable with
	// no preceding declaration.
	GlobalFunctions []string

	// MethodNames are the trailing segments accepted on dotted call paths
	// such as `i18n.t(...)`.
	MethodNames []string

	// KeypathAttributes are template attributes whose value is a key path.
	KeypathAttributes []string

	// MetaFields are field names extracted from page-level metadata object
	// literals when their value looks like a key path.
	MetaFields []string

	// Extensions are the file extensions scanned, including the leading dot.
	Extensions []string
}

// Scanner extracts key usages from source files under one or more roots.
type Scanner struct {
	globalFunctions map[string]struct{}
	methodNames     map[string]struct{}
	metaFields      map[string]struct{}
	extensions      map[string]struct{}

	factoryDeclRe     *regexp.Regexp
	destructureRe     *regexp.Regexp
	callRe            *regexp.Regexp
	constStringRe     *regexp.Regexp
	attrStaticRe      *regexp.Regexp
	attrDynamicRe     *regexp.Regexp
	metaFieldRe       *regexp.Regexp
	quotedLiteralRe   *regexp.Regexp
	interpolationRe   *regexp.Regexp
	bareIdentifierRe  *regexp.Regexp
	destructedPieceRe *regexp.Regexp
}

const identifier = `[A-Za-z_$][\w$]*`

// New builds a Scanner from cfg, compiling one pattern per grammar.
//
// Grammars whose name set is empty are disabled rather than compiled into
// patterns that match everything.
func New(cfg Config) *Scanner {
	s := &Scanner{
		globalFunctions: toSet(cfg.GlobalFunctions),
		methodNames:     toSet(cfg.MethodNames),
		metaFields:      toSet(cfg.MetaFields),
		extensions:      make(map[string]struct{}, len(cfg.Extensions)),

		constStringRe:     regexp.MustCompile(`\b(?:const|let|var)\s+(` + identifier + `)\s*=\s*(?:'([^']*)'|"([^"]*)")`),
		quotedLiteralRe:   regexp.MustCompile(`'([^']*)'|"([^"]*)"`),
		interpolationRe:   regexp.MustCompile(`\$\{[^}]*\}`),
		bareIdentifierRe:  regexp.MustCompile(`^` + identifier + `$`),
		destructedPieceRe: regexp.MustCompile(`^(` + identifier + `)(?:\s*:\s*(` + identifier + `))?$`),
	}

	for _, ext := range cfg.Extensions {
		s.extensions[strings.ToLower(ext)] = struct{}{}
	}

	if alt := alternation(cfg.TranslationFactories); alt != "" {
		s.factoryDeclRe = regexp.MustCompile(`\bconst\s+(` + identifier + `)\s*=\s*(?:await\s+)?(?:` + alt + `)\s*\(([^)]*)\)`)
	}

	if alt := alternation(cfg.Composables); alt != "" {
		s.destructureRe = regexp.MustCompile(`\bconst\s*\{([^}]*)\}\s*=\s*(?:` + alt + `)\s*\(`)
	}

	s.callRe = regexp.MustCompile(
		`(` + identifier + `(?:\.` + identifier + `)*)\s*\(\s*` +
			`(?:"((?:[^"\\]|\\.)*)"` +
			`|'((?:[^'\\]|\\.)*)'` +
			"|`([^`]*)`" +
			`|(` + identifier + `)\s*[,)])`)

	if alt := alternation(cfg.KeypathAttributes); alt != "" {
		s.attrStaticRe = regexp.MustCompile(`(?:` + alt + `)\s*=\s*"([^"]*)"`)
		s.attrDynamicRe = regexp.MustCompile(`:(?:` + alt + `)\s*=\s*"([^"]*)"`)
	}

	if alt := alternation(cfg.MetaFields); alt != "" {
		s.metaFieldRe = regexp.MustCompile(`\b(?:` + alt + `)\s*:\s*(?:'([^']+)'|"([^"]+)")`)
	}

	return s
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

func alternation(names []string) string {
	if len(names) == 0 {
		return ""
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}

	return strings.Join(quoted, "|")
}

// Scan walks every source root and returns all key usages found, grouped
// by resolved full key. Usages under one key are sorted by file, line, and
// column so repeated scans of identical trees produce identical results.
func (s *Scanner) Scan(roots []string) (map[string][]Usage, error) {
	var files []string

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if d.IsDir() {
				name := d.Name()
				if name == "node_modules" || (path != root && strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if _, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; ok {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk source root %s: %w", root, err)
		}
	}

	var (
		mu  sync.Mutex
		g   errgroup.Group
		out = make(map[string][]Usage)
	)

	g.SetLimit(scanConcurrency)

	for _, file := range files {
		file := file

		g.Go(func() error {
			usages, err := s.ScanFile(file)
			if err != nil {
				return err
			}

			mu.Lock()
			for _, usage := range usages {
				out[usage.FullKey] = append(out[usage.FullKey], usage)
			}
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, usages := range out {
		sort.Slice(usages, func(i, j int) bool {
			if usages[i].File != usages[j].File {
				return usages[i].File < usages[j].File
			}

			if usages[i].Line != usages[j].Line {
				return usages[i].Line < usages[j].Line
			}

			return usages[i].Column < usages[j].Column
		})
	}

	return out, nil
}

// ScanFile extracts all key usages from a single source file.
func (s *Scanner) ScanFile(path string) ([]Usage, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- scanning configured source roots
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}

	fsc := &fileScan{
		scanner: s,
		path:    path,
		lines:   strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"),
		consts:  make(map[string]string),
	}

	fsc.collectConstStrings()
	fsc.collectDeclarations()

	var usages []Usage

	for i, line := range fsc.lines {
		lineNo := i + 1

		usages = append(usages, fsc.callUsages(lineNo, line)...)
		usages = append(usages, fsc.attributeUsages(lineNo, line)...)
		usages = append(usages, fsc.metaUsages(lineNo, line)...)
	}

	return usages, nil
}
