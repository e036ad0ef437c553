// Copyright 2024 - 2026, the i18nkit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package namespace

import (
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	root := filepath.Join("app", "locales")

	cases := []struct {
		name   string
		file   string
		prefix string
		want   string
	}{
		{
			name: "RootItself",
			file: filepath.Join(root, "en.json"),
			want: "",
		},
		{
			name:   "RootItselfWithPrefix",
			file:   filepath.Join(root, "en.json"),
			prefix: "base",
			want:   "base",
		},
		{
			name: "PlainDirectories",
			file: filepath.Join(root, "pages", "users", "en.json"),
			want: "pages.users",
		},
		{
			name: "DynamicSegment",
			file: filepath.Join(root, "pages", "users", "[id]", "en.json"),
			want: "pages.users._id_",
		},
		{
			name: "OptionalSegment",
			file: filepath.Join(root, "pages", "[[slug]]", "en.json"),
			want: "pages.__slug__",
		},
		{
			name: "CatchAllSegment",
			file: filepath.Join(root, "pages", "[...slug]", "en.json"),
			want: "pages.___slug",
		},
		{
			name: "LocaleSegmentRemoved",
			file: filepath.Join(root, "pages", "[locale]", "users", "en.json"),
			want: "pages.users",
		},
		{
			name:   "PrefixPrepended",
			file:   filepath.Join(root, "common", "en.json"),
			prefix: "base",
			want:   "base.common",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Resolve(tc.file, root, tc.prefix, "[locale]")
			if got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.file, got, tc.want)
			}
		})
	}
}

// The merger and the unused-key checker both call Resolve; identical
// inputs must produce identical output on repeated calls.
func TestResolveDeterministic(t *testing.T) {
	t.Parallel()

	file := filepath.Join("root", "pages", "[id]", "en.json")

	first := Resolve(file, "root", "pfx", "[locale]")
	for i := 0; i < 10; i++ {
		if got := Resolve(file, "root", "pfx", "[locale]"); got != first {
			t.Fatalf("Resolve is not deterministic: %q vs %q", got, first)
		}
	}
}
