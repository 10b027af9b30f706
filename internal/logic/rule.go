package logic

import "Switchback/internal/items"

// Rule is a pure access predicate over a player state and its context.
type Rule func(State, Context) bool

var (
	// True allows every state.
	True Rule = func(State, Context) bool { return true }
	// False denies every state.
	False Rule = func(State, Context) bool { return false }
)

// Has requires at least n copies of the handle.
func Has(h items.Handle, n int) Rule {
	return func(s State, _ Context) bool {
		return s.Count(h) >= n
	}
}

// Flag requires a story flag to be set.
func Flag(h items.Handle) Rule {
	return Has(h, 1)
}

// HasAny requires one copy of any of the handles.
func HasAny(handles ...items.Handle) Rule {
	return func(s State, _ Context) bool {
		for _, h := range handles {
			if s.Count(h) > 0 {
				return true
			}
		}
		return false
	}
}

// HasAll requires one copy of every handle.
func HasAll(handles ...items.Handle) Rule {
	return func(s State, _ Context) bool {
		for _, h := range handles {
			if s.Count(h) == 0 {
				return false
			}
		}
		return true
	}
}

// And evaluates rules left to right and stops at the first failure.
func And(rules ...Rule) Rule {
	switch len(rules) {
	case 0:
		return True
	case 1:
		return rules[0]
	}
	return func(s State, ctx Context) bool {
		for _, r := range rules {
			if !r(s, ctx) {
				return false
			}
		}
		return true
	}
}

// Or evaluates rules left to right and stops at the first success.
func Or(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return func(s State, ctx Context) bool {
		for _, r := range rules {
			if r(s, ctx) {
				return true
			}
		}
		return false
	}
}

func Not(r Rule) Rule {
	return func(s State, ctx Context) bool {
		return !r(s, ctx)
	}
}

// AtAge requires the evaluation to happen at the given age.
func AtAge(age Age) Rule {
	return func(_ State, ctx Context) bool {
		return ctx.Age == age
	}
}

// AtTime requires the evaluation to happen in the given time window.
func AtTime(tod TimeOfDay) Rule {
	return func(_ State, ctx Context) bool {
		return ctx.TimeOfDay == tod
	}
}
