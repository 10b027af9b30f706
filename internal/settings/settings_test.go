package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte("shuffle_smallkeys: keysanity\nbridge: tokens\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.ShuffleSmallKeys != "keysanity" || s.Bridge != "tokens" {
		t.Fatalf("expected overrides, got smallkeys=%q bridge=%q", s.ShuffleSmallKeys, s.Bridge)
	}
	if s.ShuffleBossKeys != "dungeon" || !s.FreeBombchuDrops {
		t.Fatalf("expected untouched options to keep defaults, got %+v", s)
	}
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if *s != *Default() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestParseTrimsValues(t *testing.T) {
	s, err := Parse([]byte("shuffle_smallkeys: \" dungeon \"\nbridge: \"open\t\"\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.ShuffleSmallKeys != "dungeon" || s.Bridge != "open" {
		t.Fatalf("expected trimmed values, got smallkeys=%q bridge=%q", s.ShuffleSmallKeys, s.Bridge)
	}
}

func TestValidateChecksStoredValue(t *testing.T) {
	s := Default()
	s.ShuffleSmallKeys = " dungeon"
	if err := s.Validate(); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected untrimmed value to be rejected, got %v", err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		t.Fatalf("expected normalized value to validate, got %v", err)
	}
}

func TestParseRejectsUnknownOption(t *testing.T) {
	_, err := Parse([]byte("shuffle_bosskeys: sometimes\n"))
	if !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected invalid setting error, got %v", err)
	}
	if !strings.Contains(err.Error(), "shuffle_bosskeys") {
		t.Fatalf("expected error to name the option, got %v", err)
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse([]byte("shuffle_smallkey: keysanity\n"))
	if err == nil {
		t.Fatalf("expected misspelled key to be rejected")
	}
	if !strings.Contains(err.Error(), "shuffle_smallkey") {
		t.Fatalf("expected error to name the key, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("bridge: [open"))
	if err == nil {
		t.Fatalf("expected malformed YAML to fail")
	}
	if errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("shuffle_mapcompass: startwith\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.ShuffleMapCompass != "startwith" {
		t.Fatalf("expected startwith, got %q", s.ShuffleMapCompass)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.Bridge = "open"
	if s.Bridge != "medallions" {
		t.Fatalf("expected original bridge untouched, got %q", s.Bridge)
	}
	if (*Settings)(nil).Clone() != nil {
		t.Fatalf("expected nil clone of nil settings")
	}
}
