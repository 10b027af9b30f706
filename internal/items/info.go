package items

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is the type tag of an item in the static table.
type Category string

const (
	CategoryItem            Category = "Item"
	CategorySong            Category = "Song"
	CategoryToken           Category = "Token"
	CategorySmallKey        Category = "SmallKey"
	CategoryHideoutSmallKey Category = "HideoutSmallKey"
	CategoryTCGSmallKey     Category = "TCGSmallKey"
	CategoryBossKey         Category = "BossKey"
	CategoryGanonBossKey    Category = "GanonBossKey"
	CategoryMap             Category = "Map"
	CategoryCompass         Category = "Compass"
	CategorySilverRupee     Category = "SilverRupee"
	CategoryDungeonReward   Category = "DungeonReward"
	CategoryShop            Category = "Shop"
	CategoryDrop            Category = "Drop"
	CategoryRefill          Category = "Refill"
	CategoryEvent           Category = "Event"
)

// Handle is the stable integer identity rule predicates use to count an
// item in a player state.
type Handle int

// NoHandle marks junk items, which are never referenced by rules.
const NoHandle Handle = -1

// Alias says an item counts as Count copies of another item.
type Alias struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Special carries the optional attributes of a table entry.
type Special struct {
	Price     *int           `yaml:"price,omitempty"`
	Bottle    bool           `yaml:"bottle,omitempty"`
	Medallion bool           `yaml:"medallion,omitempty"`
	Stone     bool           `yaml:"stone,omitempty"`
	Trade     bool           `yaml:"trade,omitempty"`
	Junk      *int           `yaml:"junk,omitempty"`
	Alias     *Alias         `yaml:"alias,omitempty"`
	Extra     map[string]any `yaml:",inline"`
}

// Entry is one row of the static item table. Progressive is true for
// advancement items, false for priority items and absent otherwise.
type Entry struct {
	Name        string   `yaml:"name"`
	Category    Category `yaml:"type"`
	Progressive *bool    `yaml:"progressive"`
	Index       *int     `yaml:"index"`
	Special     Special  `yaml:"special"`
}

// Info is the immutable static metadata of a named item.
type Info struct {
	Name        string
	Category    Category
	Advancement bool
	Priority    bool
	Index       int
	HasIndex    bool
	Price       int
	Priced      bool
	Bottle      bool
	Medallion   bool
	Stone       bool
	Trade       bool
	Junk        int
	IsJunk      bool
	Alias       *Alias
	Event       bool
	Handle      Handle
	Extra       map[string]any
}

func newInfo(entry Entry) *Info {
	info := &Info{
		Name:      entry.Name,
		Category:  entry.Category,
		Bottle:    entry.Special.Bottle,
		Medallion: entry.Special.Medallion,
		Stone:     entry.Special.Stone,
		Trade:     entry.Special.Trade,
		Alias:     entry.Special.Alias,
		Extra:     entry.Special.Extra,
		Handle:    NoHandle,
	}
	if entry.Progressive != nil {
		info.Advancement = *entry.Progressive
		info.Priority = !*entry.Progressive
	}
	if entry.Index != nil {
		info.Index, info.HasIndex = *entry.Index, true
	}
	if entry.Special.Price != nil {
		info.Price, info.Priced = *entry.Special.Price, true
	}
	if entry.Special.Junk != nil {
		info.Junk, info.IsJunk = *entry.Special.Junk, true
	}
	return info
}

func newEventInfo(name string) *Info {
	return &Info{
		Name:        name,
		Category:    CategoryEvent,
		Advancement: true,
		Event:       true,
		Handle:      NoHandle,
	}
}

//go:embed items.yaml
var defaultTable []byte

// ParseTable decodes a YAML item table.
func ParseTable(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode item table: %w", err)
	}
	return entries, nil
}

// DefaultTable returns the bundled item table.
func DefaultTable() []Entry {
	entries, err := ParseTable(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("items: bundled table is corrupt: %v", err))
	}
	return entries
}
