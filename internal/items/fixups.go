package items

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFixups indicates a deferred copy was requested without a registry.
	ErrNoFixups = errors.New("deferred copy needs a fixup registry")
	// ErrFixupsDrained indicates a registry that was already drained.
	ErrFixupsDrained = errors.New("fixups already drained")
	// ErrUnresolvedFixups indicates copies that could not be bound to a world.
	ErrUnresolvedFixups = errors.New("unresolved item fixups")
)

type pendingCopy struct {
	item    *Item
	worldID int
}

// Fixups records item copies made before their destination world existed.
// It has a single owner and is drained exactly once, after every world has
// been constructed and before any search runs.
type Fixups struct {
	pending []pendingCopy
	drained bool
}

func NewFixups() *Fixups {
	return &Fixups{}
}

func (f *Fixups) add(item *Item, worldID int) error {
	if f.drained {
		return ErrFixupsDrained
	}
	f.pending = append(f.pending, pendingCopy{item: item, worldID: worldID})
	return nil
}

// Pending reports how many copies await a world.
func (f *Fixups) Pending() int { return len(f.pending) }

// Drained reports whether Drain has run.
func (f *Fixups) Drained() bool { return f.drained }

// Drain binds every pending copy to the world with the recorded id. Copies
// whose world is missing stay pending and make the drain fail; the registry
// cannot be drained again either way.
func (f *Fixups) Drain(worlds []Owner) error {
	if f.drained {
		return ErrFixupsDrained
	}
	f.drained = true
	byID := make(map[int]Owner, len(worlds))
	for _, w := range worlds {
		if w != nil {
			byID[w.ID()] = w
		}
	}
	var unresolved []pendingCopy
	for _, p := range f.pending {
		w, ok := byID[p.worldID]
		if !ok {
			unresolved = append(unresolved, p)
			continue
		}
		p.item.owner = w
	}
	f.pending = unresolved
	if len(unresolved) > 0 {
		first := unresolved[0]
		return fmt.Errorf("%w: %d pending, first %s for world %d", ErrUnresolvedFixups, len(unresolved), first.item.Name, first.worldID)
	}
	return nil
}

// Verify fails when copies are still pending.
func (f *Fixups) Verify() error {
	if len(f.pending) > 0 {
		return fmt.Errorf("%w: %d pending", ErrUnresolvedFixups, len(f.pending))
	}
	return nil
}
