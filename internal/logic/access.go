package logic

import "errors"

// ErrContradiction reports a connector asked to be both always and never
// passable.
var ErrContradiction = errors.New("access cannot be both always and never")

type accessKind uint8

const (
	accessRules accessKind = iota
	accessAlways
	accessNever
)

// Access is the composed predicate guarding a connector. It is either
// unconditionally open, unconditionally closed, or the conjunction of an
// ordered rule list. The zero value is an empty conjunction and allows
// every state.
type Access struct {
	kind  accessKind
	rules []Rule
}

// Always reports whether the access is unconditionally open.
func (a *Access) Always() bool { return a.kind == accessAlways }

// Never reports whether the access is unconditionally closed.
func (a *Access) Never() bool { return a.kind == accessNever }

// Rules returns the conjoined rules in insertion order. The rules are
// shared with the access, the slice is not.
func (a *Access) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// Add conjoins a rule. An always-open access adopts the rule as its only
// constraint; a never-open access ignores it.
func (a *Access) Add(r Rule) {
	if r == nil {
		panic("logic: nil rule")
	}
	switch a.kind {
	case accessAlways:
		a.Set(r)
	case accessNever:
	default:
		a.rules = append(a.rules, r)
	}
}

// Set replaces every constraint with a single rule.
func (a *Access) Set(r Rule) {
	if r == nil {
		panic("logic: nil rule")
	}
	a.kind = accessRules
	a.rules = []Rule{r}
}

// SetAlways makes the access unconditionally open.
func (a *Access) SetAlways() error {
	if a.kind == accessNever {
		return ErrContradiction
	}
	a.kind = accessAlways
	a.rules = nil
	return nil
}

// SetNever makes the access unconditionally closed.
func (a *Access) SetNever() error {
	if a.kind == accessAlways {
		return ErrContradiction
	}
	a.kind = accessNever
	a.rules = nil
	return nil
}

// Allows evaluates the access against a state.
func (a *Access) Allows(s State, ctx Context) bool {
	switch a.kind {
	case accessAlways:
		return true
	case accessNever:
		return false
	}
	for _, r := range a.rules {
		if !r(s, ctx) {
			return false
		}
	}
	return true
}

// Rule returns the composed predicate as a single Rule.
func (a *Access) Rule() Rule {
	switch a.kind {
	case accessAlways:
		return True
	case accessNever:
		return False
	}
	return And(a.Rules()...)
}

// Clone copies the access; the rules themselves are shared.
func (a *Access) Clone() Access {
	return Access{kind: a.kind, rules: a.Rules()}
}
