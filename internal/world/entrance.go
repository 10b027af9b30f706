package world

import (
	"errors"
	"fmt"
	"strings"

	"Switchback/internal/logic"
)

var (
	// ErrNotConnected indicates an operation that needs a connected entrance.
	ErrNotConnected = errors.New("entrance is not connected")
	// ErrAlreadyConnected indicates a connect on an entrance that has a target.
	ErrAlreadyConnected = errors.New("entrance is already connected")
	// ErrRetired indicates an operation on a discarded placeholder.
	ErrRetired = errors.New("entrance has been retired")
	// ErrReplacesCycle indicates a replaces chain that would loop back.
	ErrReplacesCycle = errors.New("replaces chain cycles")
)

// EntranceID indexes an entrance within its world.
type EntranceID int

// NoEntrance marks an unset reverse, replaces or assumed link.
const NoEntrance EntranceID = -1

// Entrance is a directed, rule-gated edge from its parent region to at most
// one target region. Links to other entrances are arena indices, never
// pointers, so a discarded or replaced entrance cannot leave a dangling
// alias behind.
type Entrance struct {
	ID         EntranceID
	Name       string
	Type       string
	Shuffled   bool
	Primary    bool
	Data       map[string]any
	RuleString string

	world         *World
	parent        RegionID
	target        RegionID
	pendingTarget string
	access        logic.Access
	reverse       EntranceID
	replaces      EntranceID
	assumed       EntranceID
	placeholder   bool
	retired       bool
}

func (e *Entrance) String() string { return e.Name }

// World returns the world that owns the entrance.
func (e *Entrance) World() *World { return e.world }

// Parent returns the region the entrance leaves from.
func (e *Entrance) Parent() *Region { return e.world.regions[e.parent] }

// Target returns the connected region, or nil when disconnected.
func (e *Entrance) Target() *Region {
	if e.target == NoRegion {
		return nil
	}
	return e.world.regions[e.target]
}

// Connected reports whether the entrance has a target.
func (e *Entrance) Connected() bool { return e.target != NoRegion }

// PendingTarget returns the region name a copied entrance still has to be
// connected to.
func (e *Entrance) PendingTarget() string { return e.pendingTarget }

// Reverse returns the paired entrance of a two-way connection.
func (e *Entrance) Reverse() *Entrance { return e.world.Entrance(e.reverse) }

// Replaces returns the entrance this one stands in for.
func (e *Entrance) Replaces() *Entrance { return e.world.Entrance(e.replaces) }

// Assumed returns the cached assumed-reachable placeholder.
func (e *Entrance) Assumed() *Entrance { return e.world.Entrance(e.assumed) }

// IsPlaceholder reports whether AssumeReachable synthesized the entrance.
func (e *Entrance) IsPlaceholder() bool { return e.placeholder }

// Retired reports whether the entrance was discarded.
func (e *Entrance) Retired() bool { return e.retired }

// Connect points the entrance at r and records it among r's entrances.
func (e *Entrance) Connect(r *Region) error {
	if r == nil {
		return fmt.Errorf("connect %s: %w", e.Name, ErrUnknownRegion)
	}
	if e.retired {
		return fmt.Errorf("connect %s: %w", e.Name, ErrRetired)
	}
	if e.target != NoRegion {
		return fmt.Errorf("connect %s to %s: %w (currently %s)", e.Name, r.Name, ErrAlreadyConnected, e.Target().Name)
	}
	if r.world != e.world {
		return fmt.Errorf("connect %s to %s: %w", e.Name, r.Name, ErrForeignRegion)
	}
	e.target = r.ID
	e.pendingTarget = ""
	r.entrances = append(r.entrances, e.ID)
	return nil
}

// Disconnect detaches the entrance from its target and returns the region
// it pointed at.
func (e *Entrance) Disconnect() (*Region, error) {
	if e.target == NoRegion {
		return nil, fmt.Errorf("disconnect %s: %w", e.Name, ErrNotConnected)
	}
	r := e.world.regions[e.target]
	r.removeEntrance(e.ID)
	e.target = NoRegion
	return r, nil
}

// ResolvePending connects a copied entrance to the region named by its
// pending target. It does nothing when no target is pending.
func (e *Entrance) ResolvePending() error {
	if e.pendingTarget == "" {
		return nil
	}
	r, err := e.world.Region(e.pendingTarget)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", e.Name, err)
	}
	return e.Connect(r)
}

// BindTwoWay pairs the entrance with other in both directions, replacing
// any earlier pairing of either side.
func (e *Entrance) BindTwoWay(other *Entrance) error {
	if other == nil {
		return fmt.Errorf("bind %s: %w", e.Name, ErrUnknownEntrance)
	}
	if other.world != e.world {
		return fmt.Errorf("bind %s to %s: %w", e.Name, other.Name, ErrForeignRegion)
	}
	e.reverse = other.ID
	other.reverse = e.ID
	return nil
}

// SetReplaces records the entrance this one stands in for. Passing nil
// clears it.
func (e *Entrance) SetReplaces(other *Entrance) error {
	if other == nil {
		e.replaces = NoEntrance
		return nil
	}
	if other.world != e.world {
		return fmt.Errorf("replaces %s: %w", other.Name, ErrForeignRegion)
	}
	seen := make(map[EntranceID]bool)
	for cur := other; cur != nil; cur = cur.Replaces() {
		if cur.ID == e.ID {
			return fmt.Errorf("%s replaces %s: %w", e.Name, other.Name, ErrReplacesCycle)
		}
		if seen[cur.ID] {
			break
		}
		seen[cur.ID] = true
	}
	e.replaces = other.ID
	return nil
}

// Copy clones the entrance as an exit of into, which is usually a region
// of another world with the same name. Rules are shared, links are kept as
// indices, and the target is carried as a name for ResolvePending.
func (e *Entrance) Copy(into *Region) *Entrance {
	c := into.world.newEntrance(e.Name, into)
	c.Type = e.Type
	c.Shuffled = e.Shuffled
	c.Primary = e.Primary
	c.Data = e.Data
	c.RuleString = e.RuleString
	c.access = e.access.Clone()
	c.reverse = e.reverse
	c.replaces = e.replaces
	c.assumed = e.assumed
	c.placeholder = e.placeholder
	if e.target != NoRegion {
		c.pendingTarget = e.world.regions[e.target].Name
	} else {
		c.pendingTarget = e.pendingTarget
	}
	return c
}

// AddRule conjoins a rule with the entrance's access. An always-open
// entrance adopts the rule as its only constraint; a never-open entrance
// ignores it.
func (e *Entrance) AddRule(r logic.Rule) { e.access.Add(r) }

// SetRule replaces the entrance's access with a single rule.
func (e *Entrance) SetRule(r logic.Rule) { e.access.Set(r) }

// SetAlways makes the entrance unconditionally passable.
func (e *Entrance) SetAlways() error {
	if err := e.access.SetAlways(); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	return nil
}

// SetNever makes the entrance permanently impassable.
func (e *Entrance) SetNever() error {
	if err := e.access.SetNever(); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	return nil
}

// Always reports whether the entrance is unconditionally passable.
func (e *Entrance) Always() bool { return e.access.Always() }

// Never reports whether the entrance is permanently impassable.
func (e *Entrance) Never() bool { return e.access.Never() }

// Rules returns the conjoined rules in insertion order.
func (e *Entrance) Rules() []logic.Rule { return e.access.Rules() }

// Rule returns the composed access predicate.
func (e *Entrance) Rule() logic.Rule { return e.access.Rule() }

// Allows evaluates the access predicate.
func (e *Entrance) Allows(s logic.State, ctx logic.Context) bool {
	return e.access.Allows(s, ctx)
}

// ApplyRuleString compiles source and installs it as the entrance's access.
// "True" and "False" set the always and never flags.
func (e *Entrance) ApplyRuleString(c *logic.Compiler, source string) error {
	rule, err := c.Compile(source)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	switch strings.TrimSpace(source) {
	case "True":
		err = e.SetAlways()
	case "False":
		err = e.SetNever()
	default:
		e.SetRule(rule)
	}
	if err != nil {
		return err
	}
	e.RuleString = source
	return nil
}
