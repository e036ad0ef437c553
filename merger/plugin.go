// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package merger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Plugin adapts the Merger to a build pipeline's lifecycle hooks: an
// initial-build hook, a per-changed-file hook, and an optional completion
// callback.
//
// A Plugin carries process-lifetime state tied to one pipeline attachment
// and must be constructed once per attachment, not shared.
type Plugin struct {
	merger *Merger

	// OnMerged, when set, runs after every successful merge pass.
	// Dependents such as the alignment checker use it to run immediately
	// after compilation.
	OnMerged func()

	// fragmentFileRe matches any path ending in <language>.json for a
	// configured language.
	fragmentFileRe *regexp.Regexp

	initialized  bool
	isProcessing atomic.Bool
}

// NewPlugin builds a Plugin around m.
func NewPlugin(m *Merger) *Plugin {
	alternatives := make([]string, len(m.Languages))
	for i, lang := range m.Languages {
		alternatives[i] = regexp.QuoteMeta(lang)
	}

	return &Plugin{
		merger:         m,
		fragmentFileRe: regexp.MustCompile(`(?:^|/)(?:` + strings.Join(alternatives, "|") + `)\.json$`),
	}
}

// BuildStart is the initial-build hook. The first call runs one full merge
// pass; later calls are no-ops.
func (p *Plugin) BuildStart() error {
	if p.initialized {
		return nil
	}

	p.initialized = true

	return p.runMerge()
}

// HandleChange is the per-changed-file hook. Paths that are not fragment
// files for a configured language are ignored. A change arriving while a
// merge pass is in flight is dropped, not queued: very rapid edit bursts
// may need one extra trigger to converge.
func (p *Plugin) HandleChange(path string) {
	if !p.fragmentFileRe.MatchString(filepath.ToSlash(path)) {
		return
	}

	if !p.isProcessing.CompareAndSwap(false, true) {
		log.Debug().Str("file", path).Msg("Merge already in flight, dropping trigger")

		return
	}

	defer p.isProcessing.Store(false)

	log.Info().Str("file", path).Msg("Fragment changed, recompiling dictionaries")

	if err := p.runMerge(); err != nil {
		log.Error().Err(err).Msg("Merge pass failed")
	}
}

// runMerge executes one full merge pass over every language and fires the
// completion callback on success.
func (p *Plugin) runMerge() error {
	if err := p.merger.MergeAll(); err != nil {
		if errors.Is(err, ErrFragmentsRewritten) {
			log.Info().Err(err).Msg("Fragments rewritten during sort pre-pass, waiting for re-trigger")

			return nil
		}

		return err
	}

	if p.OnMerged != nil {
		p.OnMerged()
	}

	return nil
}

// Watch runs the initial build and then feeds file-change notifications to
// HandleChange until ctx is canceled.
//
// Directories containing fragment files are registered with the watcher;
// new fragment files appearing in an already-watched directory are picked
// up, new directories are not until the next restart.
func (p *Plugin) Watch(ctx context.Context) error {
	if err := p.BuildStart(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]struct{})

	for _, lang := range p.merger.Languages {
		fragments, err := p.merger.Fragments(lang)
		if err != nil {
			return err
		}

		for _, fragment := range fragments {
			dirs[filepath.Dir(fragment.Path)] = struct{}{}
		}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log.Info().Int("directories", len(dirs)).Msg("Watching fragment directories")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				p.HandleChange(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Error().Err(err).Msg("File watcher error")
		}
	}
}
