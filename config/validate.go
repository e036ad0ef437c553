// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

var (
	errNoSourceRoots       = errors.New("at least one source root must be configured")
	errNoLanguages         = errors.New("at least one language must be configured")
	errNoOutputDir         = errors.New("an output directory must be configured")
	errReferenceNotInSet   = errors.New("reference language is not in the configured language set")
	errEmptySourceRootPath = errors.New("source root has an empty path")
)

// validate checks the loaded configuration for internal consistency.
func (cfg *Config) validate() error {
	if len(cfg.SourceRoots) == 0 {
		return errNoSourceRoots
	}

	for _, root := range cfg.SourceRoots {
		if root.Path == "" {
			return errEmptySourceRootPath
		}
	}

	if len(cfg.Languages) == 0 {
		return errNoLanguages
	}

	for _, lang := range cfg.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("invalid language code %q: %w", lang, err)
		}
	}

	if !slices.Contains(cfg.Languages, cfg.ReferenceLanguage) {
		return fmt.Errorf("%w: %q", errReferenceNotInSet, cfg.ReferenceLanguage)
	}

	if cfg.OutputDir == "" {
		return errNoOutputDir
	}

	return nil
}
