package colors

import "testing"

func TestParseHexRoundTrip(t *testing.T) {
	c, err := ParseHex("#1a2b3c")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c.R8 != 0x1a || c.G8 != 0x2b || c.B8 != 0x3c {
		t.Errorf("wrong channels: got (%d,%d,%d)", c.R8, c.G8, c.B8)
	}
	if got := c.Hex(); got != "#1a2b3c" {
		t.Errorf("Hex round-trip: got %q", got)
	}

	// Prefix is optional.
	c2, err := ParseHex("1a2b3c")
	if err != nil {
		t.Fatalf("ParseHex without prefix failed: %v", err)
	}
	if c2 != c {
		t.Errorf("prefix changed result: %v vs %v", c2, c)
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "#fff", "zzzzzz", "#12345", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestParseHexOrBlackFailsClosed(t *testing.T) {
	c := ParseHexOrBlack("not-a-color")
	if c.R8 != 0 || c.G8 != 0 || c.B8 != 0 {
		t.Errorf("malformed color should fail closed to black, got %s", c.Hex())
	}

	c = ParseHexOrBlack("#aabbcc")
	if c.Hex() != "#aabbcc" {
		t.Errorf("valid color mangled: %s", c.Hex())
	}
}

func TestParseTheme(t *testing.T) {
	for _, name := range []string{"light", "dark", "sepia", "custom", "DARK"} {
		if _, err := ParseTheme(name); err != nil {
			t.Errorf("ParseTheme(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseTheme("solarized"); err == nil {
		t.Error("unknown theme should fail")
	}
}

func TestSchemeFor(t *testing.T) {
	if s := SchemeFor(ThemeDark); s.Name != "dark" {
		t.Errorf("dark scheme: got %q", s.Name)
	}
	if s := SchemeFor(ThemeSepia); s.Name != "sepia" {
		t.Errorf("sepia scheme: got %q", s.Name)
	}
	if s := SchemeFor(ThemeLight); s.Name != "light" {
		t.Errorf("light scheme: got %q", s.Name)
	}
}

func TestNewCustomSchemeFailsClosed(t *testing.T) {
	s := NewCustomScheme("#112233", "garbage")
	if s.Foreground.Hex() != "#112233" {
		t.Errorf("foreground: got %s", s.Foreground.Hex())
	}
	if s.Background.Hex() != "#000000" {
		t.Errorf("malformed background should be black, got %s", s.Background.Hex())
	}
}

func TestSchemeDark(t *testing.T) {
	if SchemeLight.Dark() {
		t.Error("light scheme should not be dark")
	}
	if !SchemeDark.Dark() {
		t.Error("dark scheme should be dark")
	}
	if SchemeSepia.Dark() {
		t.Error("sepia scheme should not be dark")
	}
	if !NewCustomScheme("#ffffff", "#101010").Dark() {
		t.Error("custom scheme with near-black background should be dark")
	}
}
