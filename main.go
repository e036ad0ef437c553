// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
i18nkit is a build-time translation-key consistency engine.

It compiles directory-scoped translation fragments into one dictionary per
language, scans application source text for key usage, and reports or
fixes used-but-undefined keys, defined-but-unused keys, and language files
that have drifted from the reference language.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"codeberg.org/i18nkit/i18nkit/checker"
	"codeberg.org/i18nkit/i18nkit/config"
	"codeberg.org/i18nkit/i18nkit/core/audit"
	"codeberg.org/i18nkit/i18nkit/merger"
	"codeberg.org/i18nkit/i18nkit/scanner"
)

func main() {
	audit.SetDefaultLogger()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func newApp() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "i18nkit.yaml",
		Usage:   "path to the configuration file",
	}

	loadConfig := func(c *cli.Context) error {
		return config.Global.LoadConfig(c.String("config"))
	}

	return &cli.App{
		Name:  "i18nkit",
		Usage: "translation-key consistency engine",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "merge",
				Usage:  "compile all translation fragments into per-language dictionaries",
				Before: loadConfig,
				Action: func(_ *cli.Context) error {
					return buildMerger().MergeAll()
				},
			},
			{
				Name:   "watch",
				Usage:  "compile dictionaries and recompile on fragment changes",
				Before: loadConfig,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "check-alignment",
						Usage: "print an alignment report after every merge",
					},
				},
				Action: runWatch,
			},
			{
				Name:      "check",
				Usage:     "report translation-key inconsistencies",
				ArgsUsage: "[alignment|undefined|unused|all]",
				Before:    loadConfig,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "treat warnings as failures",
					},
				},
				Action: runCheck,
			},
			{
				Name:      "fix",
				Usage:     "rewrite translation files to resolve inconsistencies",
				ArgsUsage: "alignment|unused",
				Before:    loadConfig,
				Action:    runFix,
			},
			{
				Name:   "print-config",
				Usage:  "print the effective configuration",
				Before: loadConfig,
				Action: func(_ *cli.Context) error {
					return config.Global.Print()
				},
			},
		},
	}
}

func runWatch(c *cli.Context) error {
	plugin := merger.NewPlugin(buildMerger())

	if c.Bool("check-alignment") {
		alignment := buildAlignment()

		plugin.OnMerged = func() {
			results, err := alignment.Check()
			if err != nil {
				log.Error().Err(err).Msg("Alignment check failed")

				return
			}

			alignment.Print(results)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return plugin.Watch(ctx)
}

//nolint:funlen // one branch per check kind
func runCheck(c *cli.Context) error {
	kind := c.Args().First()
	if kind == "" {
		kind = "all"
	}

	failed := false

	if kind == "alignment" || kind == "all" {
		alignment := buildAlignment()

		results, err := alignment.Check()
		if err != nil {
			return err
		}

		alignment.Print(results)

		for _, result := range results {
			if !result.Aligned() {
				failed = true
			}
		}
	}

	if kind == "undefined" || kind == "unused" || kind == "all" {
		usages, err := runScan()
		if err != nil {
			return err
		}

		if kind == "undefined" || kind == "all" {
			undefined := &checker.Undefined{
				Dir:           config.Global.OutputDir,
				ReferenceLang: config.Global.ReferenceLanguage,
			}

			result, err := undefined.Check(usages)
			if err != nil {
				return err
			}

			undefined.Print(result)

			failed = failed || len(result.Undefined) > 0
		}

		if kind == "unused" || kind == "all" {
			unused := buildUnused()

			result, err := unused.Check(usages)
			if err != nil {
				return err
			}

			unused.Print(result)

			failed = failed || result.TotalUnused > 0
			if c.Bool("strict") && len(result.Unattributed) > 0 {
				failed = true
			}
		}
	}

	if failed {
		return cli.Exit("translation keys are inconsistent", 1)
	}

	return nil
}

func runFix(c *cli.Context) error {
	switch c.Args().First() {
	case "alignment":
		changed, err := buildAlignment().Fix()
		if err != nil {
			return err
		}

		log.Info().Int("files", changed).Msg("Alignment fix finished")

		return nil
	case "unused":
		unused := buildUnused()

		usages, err := runScan()
		if err != nil {
			return err
		}

		result, err := unused.Check(usages)
		if err != nil {
			return err
		}

		changed, err := unused.Fix(result)
		if err != nil {
			return err
		}

		log.Info().Int("files", changed).Msg("Unused-key fix finished")

		return nil
	default:
		return cli.Exit("fix requires an argument: alignment or unused", 2)
	}
}

func buildMerger() *merger.Merger {
	cfg := &config.Global

	roots := make([]merger.Root, len(cfg.SourceRoots))
	for i, root := range cfg.SourceRoots {
		roots[i] = merger.Root{Path: root.Path, Prefix: root.Prefix}
	}

	return &merger.Merger{
		Roots:            roots,
		Languages:        cfg.Languages,
		OutputDir:        cfg.OutputDir,
		LocaleDirSegment: cfg.LocaleDirSegment,
		SortFragments:    cfg.SortFragments,
	}
}

func buildAlignment() *checker.Alignment {
	return &checker.Alignment{
		Dir:           config.Global.OutputDir,
		ReferenceLang: config.Global.ReferenceLanguage,
	}
}

func buildUnused() *checker.Unused {
	return &checker.Unused{
		Dir:           config.Global.OutputDir,
		ReferenceLang: config.Global.ReferenceLanguage,
		Merger:        buildMerger(),
		Whitelist:     config.Global.Unused.Whitelist,
	}
}

func runScan() (map[string][]scanner.Usage, error) {
	cfg := &config.Global

	s := scanner.New(scanner.Config{
		TranslationFactories: cfg.Scanner.TranslationFactories,
		Composables:          cfg.Scanner.Composables,
		GlobalFunctions:      cfg.Scanner.GlobalFunctions,
		MethodNames:          cfg.Scanner.MethodNames,
		KeypathAttributes:    cfg.Scanner.KeypathAttributes,
		MetaFields:           cfg.Scanner.MetaFields,
		Extensions:           cfg.Scanner.Extensions,
	})

	paths := make([]string, len(cfg.SourceRoots))
	for i, root := range cfg.SourceRoots {
		paths[i] = root.Path
	}

	return s.Scan(paths)
}
