package items

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownItem indicates a name that is absent from the item table.
	ErrUnknownItem = errors.New("unknown item")
	// ErrDuplicateItem indicates a table that lists the same name twice.
	ErrDuplicateItem = errors.New("duplicate item")
)

// Registry is the process-wide oracle of item metadata. It is built once
// from a static table and assigns solver handles in table order. Only
// event registration mutates it after construction.
type Registry struct {
	mu      sync.RWMutex
	infos   map[string]*Info
	ordered []*Info
	events  map[string]*Info
	handles map[string]Handle
	names   []string
	bottles map[Handle]string
	medals  map[Handle]string
	stones  map[Handle]string
	junk    map[string]int
}

// NewRegistry builds a registry from the provided table entries.
func NewRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{
		infos:   make(map[string]*Info, len(entries)),
		ordered: make([]*Info, 0, len(entries)),
		events:  make(map[string]*Info),
		handles: make(map[string]Handle, len(entries)),
		bottles: make(map[Handle]string),
		medals:  make(map[Handle]string),
		stones:  make(map[Handle]string),
		junk:    make(map[string]int),
	}
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("item table contains an entry without a name")
		}
		if _, exists := r.infos[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, name)
		}
		entry.Name = name
		info := newInfo(entry)
		if !info.IsJunk {
			info.Handle = r.assignLocked(name)
		}
		r.infos[name] = info
		r.ordered = append(r.ordered, info)
		switch {
		case info.IsJunk:
			r.junk[name] = info.Junk
		case info.Bottle:
			r.bottles[info.Handle] = name
		case info.Medallion:
			r.medals[info.Handle] = name
		case info.Stone:
			r.stones[info.Handle] = name
		}
	}
	for _, info := range r.ordered {
		if info.Alias == nil {
			continue
		}
		target, ok := r.infos[info.Alias.Name]
		if !ok {
			return nil, fmt.Errorf("%s aliases %w: %s", info.Name, ErrUnknownItem, info.Alias.Name)
		}
		if target.IsJunk {
			return nil, fmt.Errorf("%s aliases junk item %s", info.Name, target.Name)
		}
	}
	return r, nil
}

// DefaultRegistry builds a registry from the bundled item table.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultTable())
}

func (r *Registry) assignLocked(name string) Handle {
	escaped := EscapeName(name)
	if h, ok := r.handles[escaped]; ok {
		return h
	}
	h := Handle(len(r.names))
	r.handles[escaped] = h
	r.names = append(r.names, escaped)
	return h
}

// Lookup returns the static metadata of the named table item.
func (r *Registry) Lookup(name string) (*Info, error) {
	r.mu.RLock()
	info, ok := r.infos[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	return info, nil
}

// Known reports whether the name is a table item.
func (r *Registry) Known(name string) bool {
	r.mu.RLock()
	_, ok := r.infos[name]
	r.mu.RUnlock()
	return ok
}

// Handle resolves an item or event name to its solver handle.
func (r *Registry) Handle(name string) (Handle, bool) {
	r.mu.RLock()
	h, ok := r.handles[EscapeName(name)]
	r.mu.RUnlock()
	return h, ok
}

// HandleName returns the escaped name that owns the handle.
func (r *Registry) HandleName(h Handle) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h < 0 || int(h) >= len(r.names) {
		return ""
	}
	return r.names[h]
}

// HandleCount reports how many handles have been issued.
func (r *Registry) HandleCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Event returns the metadata for a story flag, creating it and issuing a
// handle the first time the name is seen.
func (r *Registry) Event(name string) *Info {
	r.mu.RLock()
	info, ok := r.events[name]
	r.mu.RUnlock()
	if ok {
		return info
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.events[name]; ok {
		return info
	}
	info = newEventInfo(name)
	info.Handle = r.assignLocked(name)
	r.events[name] = info
	return info
}

// All returns the table items in table order.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Info, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Junk returns the junk weights keyed by item name.
func (r *Registry) Junk() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(r.junk))
	for name, weight := range r.junk {
		out[name] = weight
	}
	return out
}

// IsBottle reports whether the handle belongs to a bottle.
func (r *Registry) IsBottle(h Handle) bool { return r.member(r.bottles, h) }

// IsMedallion reports whether the handle belongs to a medallion.
func (r *Registry) IsMedallion(h Handle) bool { return r.member(r.medals, h) }

// IsStone reports whether the handle belongs to a spiritual stone.
func (r *Registry) IsStone(h Handle) bool { return r.member(r.stones, h) }

// Bottles lists bottle names in handle order.
func (r *Registry) Bottles() []string { return r.sorted(r.bottles) }

// Medallions lists medallion names in handle order.
func (r *Registry) Medallions() []string { return r.sorted(r.medals) }

// Stones lists spiritual stone names in handle order.
func (r *Registry) Stones() []string { return r.sorted(r.stones) }

func (r *Registry) member(set map[Handle]string, h Handle) bool {
	r.mu.RLock()
	_, ok := set[h]
	r.mu.RUnlock()
	return ok
}

func (r *Registry) sorted(set map[Handle]string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handles := make([]Handle, 0, len(set))
	for h := range set {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = set[h]
	}
	return out
}

// NewItem creates a world-bound instance of a table item.
func (r *Registry) NewItem(name string, owner Owner) (*Item, error) {
	info, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.wrap(info, owner), nil
}

// NewEvent creates a world-bound story flag item.
func (r *Registry) NewEvent(name string, owner Owner) *Item {
	return r.wrap(r.Event(name), owner)
}

// NewItems creates one instance per name, failing on the first unknown name.
func (r *Registry) NewItems(names []string, owner Owner) ([]*Item, error) {
	out := make([]*Item, 0, len(names))
	for _, name := range names {
		item, err := r.NewItem(name, owner)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Filter instantiates every table item for the owner and keeps those the
// predicate accepts. A nil predicate keeps everything.
func (r *Registry) Filter(owner Owner, keep func(*Item) bool) []*Item {
	var out []*Item
	for _, info := range r.All() {
		item := r.wrap(info, owner)
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (r *Registry) wrap(info *Info, owner Owner) *Item {
	item := &Item{
		Name:        info.Name,
		Info:        info,
		Event:       info.Event,
		Price:       info.Price,
		Priced:      info.Priced,
		AliasHandle: NoHandle,
		registry:    r,
		owner:       owner,
	}
	if info.Alias != nil {
		if h, ok := r.Handle(info.Alias.Name); ok {
			item.AliasHandle = h
		}
	}
	return item
}
