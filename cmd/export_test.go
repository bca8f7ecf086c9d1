package cmd

import (
	"testing"

	"pdfview/viewer/colors"
)

func TestExportSchemeDefaultsCustomToLightPair(t *testing.T) {
	s := exportScheme(colors.ThemeCustom, "", "")
	if s.Foreground.Hex() != "#000000" || s.Background.Hex() != "#ffffff" {
		t.Errorf("unset custom colors: got %s on %s", s.Foreground.Hex(), s.Background.Hex())
	}

	s = exportScheme(colors.ThemeCustom, "#112233", "")
	if s.Foreground.Hex() != "#112233" || s.Background.Hex() != "#ffffff" {
		t.Errorf("partially set custom colors: got %s on %s", s.Foreground.Hex(), s.Background.Hex())
	}

	s = exportScheme(colors.ThemeDark, "#112233", "")
	if s.Name != "dark" {
		t.Errorf("built-in theme should ignore color flags: got scheme %q", s.Name)
	}
}
