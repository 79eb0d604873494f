package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/render"
)

func testManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "campus",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#4f46e5",
			"surface": "#ffffff",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/campus",
			Files: map[string]string{
				"stylesheet": "campus.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"surface": "#111827"},
				Assets: theme.Assets{
					Files: map[string]string{"stylesheet": "campus.dark.css"},
				},
			},
		},
	}
}

func TestThemeConfigAppliesVariant(t *testing.T) {
	cfg := render.ThemeConfig(testManifest(), "dark")
	if cfg == nil {
		t.Fatalf("expected config")
	}
	if cfg.Theme != "campus" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	wantVars := map[string]string{"--brand": "#4f46e5", "--surface": "#111827"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/campus/campus.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown key, got %q", got)
	}
	if got := render.CSSVarsStyle(cfg.CSSVars); got != "--brand: #4f46e5; --surface: #111827;" {
		t.Fatalf("unexpected style %q", got)
	}
}

func TestThemeConfigUnknownVariantUsesBase(t *testing.T) {
	manifest := testManifest()
	cfg := render.ThemeConfig(manifest, "sepia")
	if cfg.Variant != "" || cfg.Tokens["surface"] != "#ffffff" {
		t.Fatalf("expected base tokens, got %+v", cfg.Tokens)
	}
	if manifest.Tokens["surface"] != "#ffffff" {
		t.Fatalf("manifest tokens must not be mutated")
	}
	if render.ThemeConfig(nil, "dark") != nil {
		t.Fatalf("expected nil config for nil manifest")
	}
}
