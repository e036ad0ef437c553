// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// applyDefaults fills in the defaults for everything the YAML file and
// environment may override.
func (cfg *Config) applyDefaults() {
	cfg.Languages = []string{"en"}
	cfg.ReferenceLanguage = "en"
	cfg.OutputDir = "i18n/generated"
	cfg.LocaleDirSegment = "[locale]"

	cfg.Scanner = ScannerConfig{
		TranslationFactories: []string{"useTranslations"},
		Composables:          []string{"useTranslationHelpers"},
		GlobalFunctions:      []string{"$t"},
		MethodNames:          []string{"t", "$t"},
		KeypathAttributes:    []string{"keypath", "path"},
		MetaFields:           []string{"title", "description"},
		Extensions:           []string{".vue", ".ts", ".tsx", ".js", ".jsx"},
	}

	cfg.Log.Level = "info"
}
