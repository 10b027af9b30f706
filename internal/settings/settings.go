package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSetting reports a setting value outside its allowed options.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds the per-world options that item classification depends on.
type Settings struct {
	ShuffleSmallKeys    string `yaml:"shuffle_smallkeys"`
	ShuffleHideoutKeys  string `yaml:"shuffle_hideoutkeys"`
	ShuffleTCGKeys      string `yaml:"shuffle_tcgkeys"`
	ShuffleBossKeys     string `yaml:"shuffle_bosskeys"`
	ShuffleGanonBossKey string `yaml:"shuffle_ganon_bosskey"`
	ShuffleMapCompass   string `yaml:"shuffle_mapcompass"`
	ShuffleSilverRupees string `yaml:"shuffle_silver_rupees"`
	Bridge              string `yaml:"bridge"`
	LACSCondition       string `yaml:"lacs_condition"`
	FreeBombchuDrops    bool   `yaml:"free_bombchu_drops"`
}

var dungeonItemOptions = []string{"remove", "vanilla", "dungeon", "regional", "overworld", "any_dungeon", "keysanity"}

var allowed = map[string][]string{
	"shuffle_smallkeys":     dungeonItemOptions,
	"shuffle_hideoutkeys":   {"vanilla", "fortress", "regional", "overworld", "any_dungeon", "keysanity"},
	"shuffle_tcgkeys":       {"remove", "vanilla", "regional", "overworld", "any_dungeon", "keysanity"},
	"shuffle_bosskeys":      dungeonItemOptions,
	"shuffle_ganon_bosskey": append(slices.Clone(dungeonItemOptions), "on_lacs", "medallions", "stones", "dungeons", "tokens", "hearts", "triforce"),
	"shuffle_mapcompass":    append(slices.Clone(dungeonItemOptions), "startwith"),
	"shuffle_silver_rupees": dungeonItemOptions,
	"bridge":                {"open", "vanilla", "stones", "medallions", "dungeons", "tokens", "hearts", "random"},
	"lacs_condition":        {"vanilla", "stones", "medallions", "dungeons", "tokens", "hearts"},
}

// Default returns the settings of an unshuffled world.
func Default() *Settings {
	return &Settings{
		ShuffleSmallKeys:    "dungeon",
		ShuffleHideoutKeys:  "vanilla",
		ShuffleTCGKeys:      "vanilla",
		ShuffleBossKeys:     "dungeon",
		ShuffleGanonBossKey: "dungeon",
		ShuffleMapCompass:   "dungeon",
		ShuffleSilverRupees: "vanilla",
		Bridge:              "medallions",
		LACSCondition:       "vanilla",
		FreeBombchuDrops:    true,
	}
}

// Parse decodes YAML on top of the defaults, trims every option and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a settings file from disk.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) options() map[string]*string {
	return map[string]*string{
		"shuffle_smallkeys":     &s.ShuffleSmallKeys,
		"shuffle_hideoutkeys":   &s.ShuffleHideoutKeys,
		"shuffle_tcgkeys":       &s.ShuffleTCGKeys,
		"shuffle_bosskeys":      &s.ShuffleBossKeys,
		"shuffle_ganon_bosskey": &s.ShuffleGanonBossKey,
		"shuffle_mapcompass":    &s.ShuffleMapCompass,
		"shuffle_silver_rupees": &s.ShuffleSilverRupees,
		"bridge":                &s.Bridge,
		"lacs_condition":        &s.LACSCondition,
	}
}

// Normalize trims surrounding whitespace from every option.
func (s *Settings) Normalize() {
	for _, value := range s.options() {
		*value = strings.TrimSpace(*value)
	}
}

// Validate checks every option, exactly as stored, against the values it
// accepts.
func (s *Settings) Validate() error {
	values := s.options()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		value := *values[key]
		if !slices.Contains(allowed[key], value) {
			return fmt.Errorf("%w: %s=%q (want one of %s)", ErrInvalidSetting, key, value, strings.Join(allowed[key], ", "))
		}
	}
	return nil
}

// Clone returns an independent copy.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
