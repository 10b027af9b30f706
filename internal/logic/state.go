package logic

import "Switchback/internal/items"

// Age is the player age a rule may be evaluated under.
type Age string

const (
	Child Age = "child"
	Adult Age = "adult"
)

// TimeOfDay is the time window a rule may be evaluated under.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Dampe TimeOfDay = "dampe"
	Night TimeOfDay = "night"
)

// Context carries the situational inputs of a rule evaluation.
type Context struct {
	Age       Age
	TimeOfDay TimeOfDay
	Spot      string
}

// State is a read-only view of the items and flags a player holds.
type State interface {
	Count(h items.Handle) int
}

// Inventory is the plain State a search accumulates while sweeping.
type Inventory struct {
	counts map[items.Handle]int
}

func NewInventory() *Inventory {
	return &Inventory{counts: make(map[items.Handle]int)}
}

// Count returns how many copies of the handle are held.
func (inv *Inventory) Count(h items.Handle) int {
	if inv == nil {
		return 0
	}
	return inv.counts[h]
}

// Add adjusts the count for a handle, dropping it at zero. The zero
// Inventory is ready to use.
func (inv *Inventory) Add(h items.Handle, n int) {
	if h == items.NoHandle || n == 0 {
		return
	}
	if inv.counts == nil {
		inv.counts = make(map[items.Handle]int)
	}
	next := inv.counts[h] + n
	if next <= 0 {
		delete(inv.counts, h)
		return
	}
	inv.counts[h] = next
}

// Collect adds an item and, for aliased items, the copies it stands for.
// Junk carries no handle and is ignored.
func (inv *Inventory) Collect(item *items.Item) {
	inv.Add(item.Handle(), 1)
	if item.AliasHandle != items.NoHandle && item.Info.Alias != nil {
		inv.Add(item.AliasHandle, item.Info.Alias.Count)
	}
}

// Remove reverses Collect.
func (inv *Inventory) Remove(item *items.Item) {
	inv.Add(item.Handle(), -1)
	if item.AliasHandle != items.NoHandle && item.Info.Alias != nil {
		inv.Add(item.AliasHandle, -item.Info.Alias.Count)
	}
}

// Clone returns an independent copy for a hypothetical branch.
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{counts: make(map[items.Handle]int, len(inv.counts))}
	for h, n := range inv.counts {
		out.counts[h] = n
	}
	return out
}
