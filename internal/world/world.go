package world

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"Switchback/internal/settings"
)

const (
	// RootRegion is where every reachability sweep starts.
	RootRegion = "Root"
	// ExitRootRegion parents the placeholders created by AssumeReachable.
	ExitRootRegion = "Root Exits"
)

var (
	// ErrUnknownRegion indicates a region name absent from the world.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrDuplicateRegion indicates a region name that is already taken.
	ErrDuplicateRegion = errors.New("duplicate region")
	// ErrUnknownEntrance indicates an entrance name absent from the world.
	ErrUnknownEntrance = errors.New("unknown entrance")
	// ErrForeignRegion indicates a region or entrance owned by another world.
	ErrForeignRegion = errors.New("region belongs to another world")
)

// RegionID indexes a region within its world.
type RegionID int

// NoRegion marks a disconnected entrance.
const NoRegion RegionID = -1

// Region is a traversable area. Its exits and incoming entrances are held
// as indices into the owning world's entrance arena.
type Region struct {
	ID   RegionID
	Name string

	world     *World
	exits     []EntranceID
	entrances []EntranceID
}

// World returns the world that owns the region.
func (r *Region) World() *World { return r.world }

// Exits returns the outgoing entrances in creation order.
func (r *Region) Exits() []*Entrance {
	return r.world.resolve(r.exits)
}

// Entrances returns the entrances currently connected into the region.
func (r *Region) Entrances() []*Entrance {
	return r.world.resolve(r.entrances)
}

// HasEntrance reports whether e is connected into the region.
func (r *Region) HasEntrance(e *Entrance) bool {
	return e != nil && e.world == r.world && slices.Contains(r.entrances, e.ID)
}

func (r *Region) String() string { return r.Name }

func (r *Region) removeEntrance(id EntranceID) {
	if i := slices.Index(r.entrances, id); i >= 0 {
		r.entrances = slices.Delete(r.entrances, i, i+1)
	}
}

func (r *Region) removeExit(id EntranceID) {
	if i := slices.Index(r.exits, id); i >= 0 {
		r.exits = slices.Delete(r.exits, i, i+1)
	}
}

// World is one player's connectivity graph. It is not safe for concurrent
// mutation; parallel search branches each work on their own Clone.
type World struct {
	id        int
	settings  *settings.Settings
	goals     map[string]bool
	logger    *slog.Logger
	regions   []*Region
	byName    map[string]RegionID
	entrances []*Entrance
	root      RegionID
	exitRoot  RegionID
}

// Option configures a World at construction.
type Option func(*World)

// WithSettings attaches the settings item classification reads.
func WithSettings(s *settings.Settings) Option {
	return func(w *World) {
		w.settings = s
	}
}

// WithLogger routes graph mutation traces to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithGoalItems marks item names the world treats as goals.
func WithGoalItems(names ...string) Option {
	return func(w *World) {
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				w.goals[trimmed] = true
			}
		}
	}
}

// New creates a world holding the Root and Root Exits regions joined by an
// always-open entrance.
func New(id int, opts ...Option) *World {
	w := &World{
		id:       id,
		settings: settings.Default(),
		goals:    make(map[string]bool),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		byName:   make(map[string]RegionID),
		root:     NoRegion,
		exitRoot: NoRegion,
	}
	for _, opt := range opts {
		opt(w)
	}
	root := w.addRegion(RootRegion)
	exitRoot := w.addRegion(ExitRootRegion)
	w.root, w.exitRoot = root.ID, exitRoot.ID
	link := w.newEntrance(ExitRootRegion, root)
	_ = link.SetAlways()
	_ = link.Connect(exitRoot)
	return w
}

// ID identifies the world among the players of a multiworld.
func (w *World) ID() int { return w.id }

// Settings returns the settings item classification reads.
func (w *World) Settings() *settings.Settings { return w.settings }

// IsGoalItem reports whether the named item is one of the world's goals.
func (w *World) IsGoalItem(name string) bool { return w.goals[name] }

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger { return w.logger }

// Root returns the region reachability sweeps start from.
func (w *World) Root() *Region { return w.regions[w.root] }

// ExitRoot returns the region that parents assumed-reachable placeholders.
func (w *World) ExitRoot() *Region { return w.regions[w.exitRoot] }

// AddRegion creates a named region.
func (w *World) AddRegion(name string) (*Region, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("region name must not be empty")
	}
	if _, exists := w.byName[trimmed]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRegion, trimmed)
	}
	return w.addRegion(trimmed), nil
}

func (w *World) addRegion(name string) *Region {
	r := &Region{ID: RegionID(len(w.regions)), Name: name, world: w}
	w.regions = append(w.regions, r)
	w.byName[name] = r.ID
	return r
}

// Region looks up a region by name.
func (w *World) Region(name string) (*Region, error) {
	id, ok := w.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, name)
	}
	return w.regions[id], nil
}

// Regions returns every region in creation order.
func (w *World) Regions() []*Region {
	out := make([]*Region, len(w.regions))
	copy(out, w.regions)
	return out
}

// NewEntrance creates a disconnected exit of parent.
func (w *World) NewEntrance(name string, parent *Region) (*Entrance, error) {
	if parent == nil {
		return nil, fmt.Errorf("entrance %s: %w", name, ErrUnknownRegion)
	}
	if parent.world != w {
		return nil, fmt.Errorf("entrance %s: %w", name, ErrForeignRegion)
	}
	return w.newEntrance(name, parent), nil
}

// Link creates an exit of from named name and connects it to to.
func (w *World) Link(from, to *Region, name string) (*Entrance, error) {
	e, err := w.NewEntrance(name, from)
	if err != nil {
		return nil, err
	}
	if err := e.Connect(to); err != nil {
		w.retire(e)
		return nil, err
	}
	return e, nil
}

func (w *World) newEntrance(name string, parent *Region) *Entrance {
	e := &Entrance{
		ID:       EntranceID(len(w.entrances)),
		Name:     name,
		world:    w,
		parent:   parent.ID,
		target:   NoRegion,
		reverse:  NoEntrance,
		replaces: NoEntrance,
		assumed:  NoEntrance,
	}
	w.entrances = append(w.entrances, e)
	parent.exits = append(parent.exits, e.ID)
	return e
}

// Entrance returns the entrance with the given id, or nil.
func (w *World) Entrance(id EntranceID) *Entrance {
	if id < 0 || int(id) >= len(w.entrances) {
		return nil
	}
	return w.entrances[id]
}

// FindEntrance returns the first live entrance with the given name.
func (w *World) FindEntrance(name string) (*Entrance, error) {
	for _, e := range w.entrances {
		if !e.retired && e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEntrance, name)
}

// Entrances returns every live entrance in creation order.
func (w *World) Entrances() []*Entrance {
	out := make([]*Entrance, 0, len(w.entrances))
	for _, e := range w.entrances {
		if !e.retired {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) resolve(ids []EntranceID) []*Entrance {
	out := make([]*Entrance, len(ids))
	for i, id := range ids {
		out[i] = w.entrances[id]
	}
	return out
}

// retire detaches an entrance from the graph. Its arena slot stays so that
// indices held elsewhere remain valid.
func (w *World) retire(e *Entrance) {
	if e.target != NoRegion {
		w.regions[e.target].removeEntrance(e.ID)
		e.target = NoRegion
	}
	w.regions[e.parent].removeExit(e.ID)
	e.retired = true
}

// Clone returns an independent copy of the world. Entrance and region ids
// are preserved, so reverse, replaces and assumed links stay meaningful.
// Targets are re-resolved by region name in the copy.
func (w *World) Clone() *World {
	out := &World{
		id:       w.id,
		settings: w.settings.Clone(),
		goals:    make(map[string]bool, len(w.goals)),
		logger:   w.logger,
		byName:   make(map[string]RegionID, len(w.byName)),
		root:     w.root,
		exitRoot: w.exitRoot,
	}
	for name := range w.goals {
		out.goals[name] = true
	}
	for _, r := range w.regions {
		out.regions = append(out.regions, &Region{ID: r.ID, Name: r.Name, world: out})
		out.byName[r.Name] = r.ID
	}
	for _, e := range w.entrances {
		c := e.Copy(out.regions[e.parent])
		c.retired = e.retired
	}
	for i, r := range w.regions {
		out.regions[i].exits = slices.Clone(r.exits)
	}
	for _, r := range w.regions {
		for _, id := range r.entrances {
			if err := out.entrances[id].ResolvePending(); err != nil {
				panic(fmt.Sprintf("world: clone of %s: %v", out.entrances[id].Name, err))
			}
		}
	}
	return out
}
