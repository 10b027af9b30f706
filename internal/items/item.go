package items

import (
	"fmt"
	"slices"
	"strings"

	"Switchback/internal/settings"
)

// Owner is the world an item instance belongs to.
type Owner interface {
	ID() int
	Settings() *settings.Settings
	IsGoalItem(name string) bool
}

// Item is a per-world instance of a table item. Its static flags come from
// Info; the classification methods depend on the owner's settings.
type Item struct {
	Name        string
	Info        *Info
	Event       bool
	Price       int
	Priced      bool
	Location    string
	LooksLike   *Item
	AliasHandle Handle

	registry *Registry
	owner    Owner
}

// Owner returns the world the item is bound to, or nil while a cross-world
// copy is still pending.
func (i *Item) Owner() Owner { return i.owner }

// Category returns the static type tag.
func (i *Item) Category() Category { return i.Info.Category }

// Advancement reports whether the item is required for forward progress.
func (i *Item) Advancement() bool { return i.Info.Advancement }

// Priority reports whether the item is useful but not required.
func (i *Item) Priority() bool { return i.Info.Priority }

// Handle returns the solver handle, NoHandle for junk.
func (i *Item) Handle() Handle { return i.Info.Handle }

func (i *Item) String() string { return i.Name }

func (i *Item) settings() *settings.Settings {
	if i.owner == nil {
		panic(fmt.Sprintf("items: %s is not bound to a world", i.Name))
	}
	s := i.owner.Settings()
	if s == nil {
		panic(fmt.Sprintf("items: world %d has no settings", i.owner.ID()))
	}
	return s
}

func (i *Item) SmallKey() bool {
	switch i.Info.Category {
	case CategorySmallKey, CategoryHideoutSmallKey, CategoryTCGSmallKey:
		return true
	}
	return false
}

func (i *Item) BossKey() bool {
	return i.Info.Category == CategoryBossKey || i.Info.Category == CategoryGanonBossKey
}

func (i *Item) Key() bool { return i.SmallKey() || i.BossKey() }

func (i *Item) Map() bool { return i.Info.Category == CategoryMap }

func (i *Item) Compass() bool { return i.Info.Category == CategoryCompass }

// DungeonItem reports whether the item belongs to a dungeon's own pool.
func (i *Item) DungeonItem() bool {
	return i.Key() || i.Map() || i.Compass() || i.Info.Category == CategorySilverRupee
}

// UnshuffledDungeonItem reports whether the owner's settings keep this
// dungeon item out of the general pool.
func (i *Item) UnshuffledDungeonItem() bool {
	s := i.settings()
	in := func(value string, options ...string) bool {
		return slices.Contains(options, value)
	}
	switch i.Info.Category {
	case CategorySmallKey:
		return in(s.ShuffleSmallKeys, "remove", "vanilla", "dungeon")
	case CategoryHideoutSmallKey:
		return s.ShuffleHideoutKeys == "vanilla"
	case CategoryTCGSmallKey:
		return in(s.ShuffleTCGKeys, "remove", "vanilla")
	case CategoryBossKey:
		return in(s.ShuffleBossKeys, "remove", "vanilla", "dungeon")
	case CategoryGanonBossKey:
		return in(s.ShuffleGanonBossKey, "remove", "vanilla", "dungeon")
	case CategoryMap, CategoryCompass:
		return in(s.ShuffleMapCompass, "remove", "startwith", "vanilla", "dungeon")
	case CategorySilverRupee:
		return in(s.ShuffleSilverRupees, "remove", "vanilla", "dungeon")
	}
	return false
}

// MajorItem reports whether the item counts as a major item under the
// owner's settings.
func (i *Item) MajorItem() bool {
	s := i.settings()
	ganonOn := func(condition string) bool {
		return s.Bridge == condition || s.ShuffleGanonBossKey == condition ||
			(s.ShuffleGanonBossKey == "on_lacs" && s.LACSCondition == condition)
	}
	if i.Info.Category == CategoryToken {
		return ganonOn("tokens")
	}
	switch i.Info.Category {
	case CategoryDrop, CategoryEvent, CategoryShop, CategoryDungeonReward:
		return false
	}
	if !i.Info.Advancement {
		return false
	}
	if strings.HasPrefix(i.Name, "Bombchus") && !s.FreeBombchuDrops {
		return false
	}
	if i.Name == "Heart Container" || strings.HasPrefix(i.Name, "Piece of Heart") {
		return ganonOn("hearts")
	}
	if i.Map() || i.Compass() {
		return false
	}
	switch i.Info.Category {
	case CategorySmallKey:
		return s.ShuffleSmallKeys != "dungeon" && s.ShuffleSmallKeys != "vanilla"
	case CategoryHideoutSmallKey:
		return s.ShuffleHideoutKeys != "vanilla"
	case CategoryTCGSmallKey:
		return s.ShuffleTCGKeys != "vanilla"
	case CategoryBossKey:
		return s.ShuffleBossKeys != "dungeon" && s.ShuffleBossKeys != "vanilla"
	case CategoryGanonBossKey:
		return s.ShuffleGanonBossKey != "dungeon" && s.ShuffleGanonBossKey != "vanilla"
	case CategorySilverRupee:
		return s.ShuffleSilverRupees != "dungeon" && s.ShuffleSilverRupees != "vanilla"
	}
	return true
}

// GoalItem reports whether the owner lists the item as a goal.
func (i *Item) GoalItem() bool {
	if i.owner == nil {
		panic(fmt.Sprintf("items: %s is not bound to a world", i.Name))
	}
	return i.owner.IsGoalItem(i.Name)
}

// Copy clones the item for dst. A copy whose destination differs from the
// item's own world, or whose destination does not exist yet, is recorded in
// fixups and bound to the counterpart of the source world when the fixups
// are drained.
func (i *Item) Copy(dst Owner, fixups *Fixups) (*Item, error) {
	if dst != nil && i.owner != nil && dst.ID() != i.owner.ID() {
		dst = nil
	}
	clone := i.registry.wrap(i.Info, dst)
	clone.Price = i.Price
	clone.Priced = i.Priced
	if dst == nil && i.owner != nil {
		if fixups == nil {
			return nil, fmt.Errorf("copy %s: %w", i.Name, ErrNoFixups)
		}
		if err := fixups.add(clone, i.owner.ID()); err != nil {
			return nil, fmt.Errorf("copy %s: %w", i.Name, err)
		}
	}
	return clone, nil
}
