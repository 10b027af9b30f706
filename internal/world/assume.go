package world

import (
	"errors"
	"fmt"
)

var (
	// ErrPlaceholder indicates an operation that real entrances only support.
	ErrPlaceholder = errors.New("entrance is an assumed-reachable placeholder")
	// ErrNotPlaceholder indicates an operation that needs a placeholder.
	ErrNotPlaceholder = errors.New("entrance is not a placeholder")
	// ErrNotAssumed indicates an entrance without a live placeholder.
	ErrNotAssumed = errors.New("entrance has no assumed placeholder")
	// ErrSelfCoupled indicates a two-way entrance placed where its own
	// reverse used to lead.
	ErrSelfCoupled = errors.New("entrance cannot take its own reverse's place")
)

// AssumeReachable makes the entrance's target reachable unconditionally
// through a placeholder hanging off the Root Exits region, then
// disconnects the entrance itself. The placeholder is cached: calling
// again while the entrance is still disconnected returns the same one.
//
// The caller owns the reversal. To reject the hypothesis, reconnect the
// entrance to its former target and DiscardPlaceholder; to accept it,
// leave the entrance disconnected and keep the placeholder.
func (e *Entrance) AssumeReachable() (*Entrance, error) {
	if e.placeholder {
		return nil, fmt.Errorf("assume %s: %w", e.Name, ErrPlaceholder)
	}
	if e.retired {
		return nil, fmt.Errorf("assume %s: %w", e.Name, ErrRetired)
	}
	if p := e.Assumed(); p != nil {
		if e.target == NoRegion {
			return p, nil
		}
		// The entrance was reconnected without discarding its placeholder.
		if !p.retired && p.target == e.target {
			if _, err := e.Disconnect(); err != nil {
				return nil, err
			}
			e.world.logger.Debug("reassumed entrance", "entrance", e.Name, "placeholder", p.ID)
			return p, nil
		}
		e.world.retire(p)
		e.assumed = NoEntrance
	}
	if e.target == NoRegion {
		return nil, fmt.Errorf("assume %s: %w", e.Name, ErrNotConnected)
	}
	target := e.world.regions[e.target]
	p := e.world.newEntrance("Root -> "+target.Name, e.world.ExitRoot())
	p.placeholder = true
	p.replaces = e.ID
	if err := p.Connect(target); err != nil {
		e.world.retire(p)
		return nil, err
	}
	if _, err := e.Disconnect(); err != nil {
		e.world.retire(p)
		return nil, err
	}
	e.assumed = p.ID
	e.world.logger.Debug("assumed entrance reachable",
		"entrance", e.Name,
		"target", target.Name,
		"placeholder", p.ID,
	)
	return p, nil
}

// DiscardPlaceholder retires the entrance's cached placeholder, removing
// its path into the target region.
func (e *Entrance) DiscardPlaceholder() error {
	p := e.Assumed()
	if p == nil {
		return fmt.Errorf("discard %s: %w", e.Name, ErrNotAssumed)
	}
	e.world.retire(p)
	e.assumed = NoEntrance
	e.world.logger.Debug("discarded placeholder", "entrance", e.Name, "placeholder", p.ID)
	return nil
}

// ChangeConnections moves the region reached through placeholder onto the
// disconnected entrance e, which inherits the placeholder's provenance. For
// two-way pairs the reverse side is rewired the same way. The returned undo
// restores the previous topology and provenance. On error nothing changes.
func (w *World) ChangeConnections(e, placeholder *Entrance) (func() error, error) {
	if err := w.checkPlacement(e, placeholder); err != nil {
		return nil, err
	}
	if e.target != NoRegion {
		return nil, fmt.Errorf("place %s: %w", e.Name, ErrAlreadyConnected)
	}
	if placeholder.target == NoRegion {
		return nil, fmt.Errorf("place %s: %w", placeholder.Name, ErrNotConnected)
	}

	revFrom, revTo := w.coupledReverse(e, placeholder)
	if revFrom == placeholder || revTo == e {
		return nil, fmt.Errorf("place %s onto %s: %w", e.Name, placeholder.Name, ErrSelfCoupled)
	}
	if revTo != nil && revTo.target != NoRegion {
		return nil, fmt.Errorf("place %s: reverse %s: %w", e.Name, revTo.Name, ErrAlreadyConnected)
	}
	if revFrom != nil && revFrom.target == NoRegion {
		return nil, fmt.Errorf("place %s: reverse %s: %w", e.Name, revFrom.Name, ErrNotConnected)
	}

	if err := move(placeholder, e); err != nil {
		return nil, fmt.Errorf("place %s: %w", e.Name, err)
	}
	if revFrom != nil {
		if err := move(revFrom, revTo); err != nil {
			if rerr := move(e, placeholder); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return nil, fmt.Errorf("place %s: reverse %s: %w", e.Name, revTo.Name, err)
		}
	}

	previous := e.replaces
	e.replaces = provenance(e, placeholder.replaces)
	previousRev := NoEntrance
	if revTo != nil {
		previousRev = revTo.replaces
		revTo.replaces = provenance(revTo, e.reverse)
	}
	w.logger.Debug("changed connections",
		"entrance", e.Name,
		"target", e.Target().Name,
		"placeholder", placeholder.ID,
		"coupled", revFrom != nil,
	)
	undo := func() error {
		if err := w.RestoreConnections(e, placeholder); err != nil {
			return err
		}
		e.replaces = previous
		if revTo != nil {
			revTo.replaces = previousRev
		}
		return nil
	}
	return undo, nil
}

// RestoreConnections reverses ChangeConnections, handing e's region back to
// the placeholder. Provenance of the placed entrances is cleared. On error
// nothing changes.
func (w *World) RestoreConnections(e, placeholder *Entrance) error {
	if err := w.checkPlacement(e, placeholder); err != nil {
		return err
	}
	if e.target == NoRegion {
		return fmt.Errorf("restore %s: %w", e.Name, ErrNotConnected)
	}
	if placeholder.target != NoRegion {
		return fmt.Errorf("restore %s: %w", placeholder.Name, ErrAlreadyConnected)
	}
	revFrom, revTo := w.coupledReverse(e, placeholder)
	if revFrom == placeholder || revTo == e {
		return fmt.Errorf("restore %s onto %s: %w", e.Name, placeholder.Name, ErrSelfCoupled)
	}
	if revTo != nil && (revTo.target == NoRegion || revFrom.target != NoRegion) {
		return fmt.Errorf("restore %s: reverse pair is not placed", e.Name)
	}

	if err := move(e, placeholder); err != nil {
		return fmt.Errorf("restore %s: %w", e.Name, err)
	}
	if revTo != nil {
		if err := move(revTo, revFrom); err != nil {
			if rerr := move(placeholder, e); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return fmt.Errorf("restore %s: reverse %s: %w", e.Name, revTo.Name, err)
		}
		revTo.replaces = NoEntrance
	}
	e.replaces = NoEntrance
	w.logger.Debug("restored connections", "entrance", e.Name, "placeholder", placeholder.ID)
	return nil
}

// move hands from's target over to to. If to cannot take it, from is
// reconnected.
func move(from, to *Entrance) error {
	region, err := from.Disconnect()
	if err != nil {
		return err
	}
	if err := to.Connect(region); err != nil {
		if rerr := from.Connect(region); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	return nil
}

func (w *World) checkPlacement(e, placeholder *Entrance) error {
	if e == nil || placeholder == nil {
		return fmt.Errorf("placement: %w", ErrUnknownEntrance)
	}
	if e.world != w || placeholder.world != w {
		return fmt.Errorf("place %s: %w", e.Name, ErrForeignRegion)
	}
	if e.placeholder {
		return fmt.Errorf("place %s: %w", e.Name, ErrPlaceholder)
	}
	if !placeholder.placeholder {
		return fmt.Errorf("place onto %s: %w", placeholder.Name, ErrNotPlaceholder)
	}
	if e.retired || placeholder.retired {
		return fmt.Errorf("place %s: %w", e.Name, ErrRetired)
	}
	return nil
}

// coupledReverse finds the reverse-side pair of a placement: the
// placeholder assumed for e's reverse (revFrom), and the reverse of the
// entrance the placeholder stands in for (revTo). Both are nil when either
// side is one-way or the reverse was never assumed.
func (w *World) coupledReverse(e, placeholder *Entrance) (revFrom, revTo *Entrance) {
	rev := e.Reverse()
	replaced := placeholder.Replaces()
	if rev == nil || replaced == nil || replaced.Reverse() == nil {
		return nil, nil
	}
	revFrom = rev.Assumed()
	if revFrom == nil {
		return nil, nil
	}
	return revFrom, replaced.Reverse()
}

// provenance returns the replaces link e should carry after taking over
// from id; an entrance placed back on its own target replaces nothing.
func provenance(e *Entrance, id EntranceID) EntranceID {
	if id == e.ID {
		return NoEntrance
	}
	return id
}
