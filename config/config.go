// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Global exposes the tool configuration.
var Global Config

// SourceRoot is one directory tree scanned for source files and
// translation fragments. Prefix, when set, is prepended to every namespace
// derived under the root.
type SourceRoot struct {
	Path   string `yaml:"path"`
	Prefix string `yaml:"prefix"`
}

// ScannerConfig lists the names the usage scanner recognizes.
type ScannerConfig struct {
	TranslationFactories []string `env:"I18NKIT_TRANSLATION_FACTORIES,overwrite" yaml:"translationFactories"`
	Composables          []string `env:"I18NKIT_COMPOSABLES,overwrite"           yaml:"composables"`
	GlobalFunctions      []string `env:"I18NKIT_GLOBAL_FUNCTIONS,overwrite"      yaml:"globalFunctions"`
	MethodNames          []string `env:"I18NKIT_METHOD_NAMES,overwrite"          yaml:"methodNames"`
	KeypathAttributes    []string `env:"I18NKIT_KEYPATH_ATTRIBUTES,overwrite"    yaml:"keypathAttributes"`
	MetaFields           []string `env:"I18NKIT_META_FIELDS,overwrite"           yaml:"metaFields"`
	Extensions           []string `env:"I18NKIT_EXTENSIONS,overwrite"            yaml:"extensions"`
}

// Config holds the tool configuration.
type Config struct {
	SourceRoots []SourceRoot `yaml:"sourceRoots"`

	Languages         []string `env:"I18NKIT_LANGUAGES,overwrite"          yaml:"languages"`
	ReferenceLanguage string   `env:"I18NKIT_REFERENCE_LANGUAGE,overwrite" yaml:"referenceLanguage"`
	OutputDir         string   `env:"I18NKIT_OUTPUT_DIR,overwrite"         yaml:"outputDir"`

	// LocaleDirSegment is the routing placeholder directory stripped during
	// namespace resolution; it exists purely for file-system routing.
	LocaleDirSegment string `env:"I18NKIT_LOCALE_DIR_SEGMENT,overwrite" yaml:"localeDirSegment"`

	// SortFragments enables the merge pre-pass that rewrites fragment files
	// with sorted keys.
	SortFragments bool `env:"I18NKIT_SORT_FRAGMENTS,overwrite" yaml:"sortFragments"`

	Scanner ScannerConfig `yaml:"scanner"`

	Unused struct {
		Whitelist []string `env:"I18NKIT_UNUSED_WHITELIST,overwrite" yaml:"whitelist"`
	} `yaml:"unused"`

	Log struct {
		Level   string   `env:"I18NKIT_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"I18NKIT_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"I18NKIT_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig populates cfg from defaults, the YAML configuration file, and
// environment variables, in that order, then validates the result and
// configures logging.
//
// A .env file in the working directory is loaded first when present.
func (cfg *Config) LoadConfig(configFilePath string) error {
	_ = godotenv.Load()

	cfg.applyDefaults()

	if err := cfg.readYAML(configFilePath); err != nil {
		return err
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("failed to read environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	cfg.setupAudit()

	return nil
}
