package world

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"Switchback/internal/logic"
)

// Reachable returns the names of every region reachable from Root under
// the given state and context.
func (w *World) Reachable(s logic.State, ctx logic.Context) map[string]bool {
	seen := make([]bool, len(w.regions))
	queue := []RegionID{w.root}
	seen[w.root] = true
	for len(queue) > 0 {
		current := w.regions[queue[0]]
		queue = queue[1:]
		for _, id := range current.exits {
			e := w.entrances[id]
			if e.retired || e.target == NoRegion || seen[e.target] {
				continue
			}
			if !e.access.Allows(s, ctx) {
				continue
			}
			seen[e.target] = true
			queue = append(queue, e.target)
		}
	}
	out := make(map[string]bool)
	for id, ok := range seen {
		if ok {
			out[w.regions[id].Name] = true
		}
	}
	return out
}

// CanReach reports whether the named region is reachable from Root.
func (w *World) CanReach(name string, s logic.State, ctx logic.Context) (bool, error) {
	if _, err := w.Region(name); err != nil {
		return false, err
	}
	return w.Reachable(s, ctx)[name], nil
}

// ExitState is the snapshot of one outgoing entrance.
type ExitState struct {
	ID     EntranceID
	Name   string
	Target string
}

// RegionState is the snapshot of one region's connections.
type RegionState struct {
	Name      string
	Exits     []ExitState
	Entrances []EntranceID
}

// Snapshot captures the live topology: exits in order, incoming entrances
// as a sorted set.
func (w *World) Snapshot() []RegionState {
	out := make([]RegionState, 0, len(w.regions))
	for _, r := range w.regions {
		state := RegionState{Name: r.Name}
		for _, id := range r.exits {
			e := w.entrances[id]
			exit := ExitState{ID: e.ID, Name: e.Name}
			if t := e.Target(); t != nil {
				exit.Target = t.Name
			}
			state.Exits = append(state.Exits, exit)
		}
		state.Entrances = append([]EntranceID(nil), r.entrances...)
		sort.Slice(state.Entrances, func(i, j int) bool { return state.Entrances[i] < state.Entrances[j] })
		out = append(out, state)
	}
	return out
}

// Fingerprint digests the snapshot so two graph states can be compared
// cheaply.
func (w *World) Fingerprint() string {
	h := blake3.New()
	for _, r := range w.Snapshot() {
		fmt.Fprintf(h, "region %q\n", r.Name)
		for _, exit := range r.Exits {
			fmt.Fprintf(h, "exit %d %q -> %q\n", exit.ID, exit.Name, exit.Target)
		}
		for _, id := range r.Entrances {
			fmt.Fprintf(h, "in %d\n", id)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
