package logic

import (
	"encoding/hex"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"golang.org/x/crypto/blake2b"

	"Switchback/internal/items"
)

var (
	// ErrEmptyRule indicates a rule string with no expression.
	ErrEmptyRule = errors.New("empty rule")
	// ErrRuleSyntax indicates a rule string that is not a valid expression.
	ErrRuleSyntax = errors.New("invalid rule")
)

// ruleSource wraps a rule expression into a function the interpreter can
// hand back. Rules see only the helpers passed in.
const ruleSource = `package main

func Rule(has func(string, int) bool, count func(string) int, flag func(string) bool, age func() string, tod func() string) bool {
	return %s
}`

type ruleFunc = func(func(string, int) bool, func(string) int, func(string) bool, func() string, func() string) bool

type ruleEntry struct {
	rule Rule
	err  error
}

// Compiler turns rule strings into Rules. Strings are Go boolean
// expressions over has("Item", n), count("Item"), flag("Event"), age() and
// tod(). Item names must be string literals so they can be checked against
// the registry when the rule is compiled.
type Compiler struct {
	registry *items.Registry

	mu    sync.RWMutex
	rules map[string]*ruleEntry
}

func NewCompiler(registry *items.Registry) *Compiler {
	return &Compiler{registry: registry, rules: make(map[string]*ruleEntry)}
}

// Compile returns the Rule for a source string, reusing earlier results.
// "True" and "False" compile to the constant rules.
func (c *Compiler) Compile(source string) (Rule, error) {
	trimmed := strings.TrimSpace(source)
	switch trimmed {
	case "":
		return nil, ErrEmptyRule
	case "True":
		return True, nil
	case "False":
		return False, nil
	}
	key := hashRule(trimmed)
	c.mu.RLock()
	entry, ok := c.rules[key]
	c.mu.RUnlock()
	if ok {
		return entry.rule, entry.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.rules[key]; ok {
		return entry.rule, entry.err
	}
	rule, err := c.compile(trimmed)
	c.rules[key] = &ruleEntry{rule: rule, err: err}
	return rule, err
}

// Cached reports how many distinct sources have been compiled.
func (c *Compiler) Cached() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

func (c *Compiler) compile(source string) (Rule, error) {
	handles, err := c.resolve(source)
	if err != nil {
		return nil, err
	}
	interpreter := interp.New(interp.Options{})
	if err := interpreter.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("rule %q: %w", source, err)
	}
	if _, err := interpreter.Eval(fmt.Sprintf(ruleSource, source)); err != nil {
		return nil, fmt.Errorf("rule %q: %w: %v", source, ErrRuleSyntax, err)
	}
	value, err := interpreter.Eval("Rule")
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", source, err)
	}
	fn, ok := value.Interface().(ruleFunc)
	if !ok {
		return nil, fmt.Errorf("rule %q has unexpected type %T", source, value.Interface())
	}
	return func(s State, ctx Context) bool {
		count := func(name string) int {
			h, ok := handles[name]
			if !ok {
				return 0
			}
			return s.Count(h)
		}
		has := func(name string, n int) bool { return count(name) >= n }
		flag := func(name string) bool { return count(name) > 0 }
		age := func() string { return string(ctx.Age) }
		tod := func() string { return string(ctx.TimeOfDay) }
		return fn(has, count, flag, age, tod)
	}, nil
}

// resolve parses the expression and maps every literal item or event name
// to its handle. Unknown items fail here rather than during a search.
func (c *Compiler) resolve(source string) (map[string]items.Handle, error) {
	expr, err := parser.ParseExpr(source)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w: %v", source, ErrRuleSyntax, err)
	}
	handles := make(map[string]items.Handle)
	var walkErr error
	ast.Inspect(expr, func(n ast.Node) bool {
		if walkErr != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		fun, ok := call.Fun.(*ast.Ident)
		if !ok {
			return true
		}
		switch fun.Name {
		case "has", "count", "flag":
		default:
			return true
		}
		if len(call.Args) == 0 {
			walkErr = fmt.Errorf("rule %q: %w: %s needs an item name", source, ErrRuleSyntax, fun.Name)
			return false
		}
		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			walkErr = fmt.Errorf("rule %q: %w: %s takes a string literal", source, ErrRuleSyntax, fun.Name)
			return false
		}
		name, err := strconv.Unquote(lit.Value)
		if err != nil {
			walkErr = fmt.Errorf("rule %q: %w: %v", source, ErrRuleSyntax, err)
			return false
		}
		if fun.Name == "flag" {
			handles[name] = c.registry.Event(name).Handle
			return true
		}
		h, ok := c.registry.Handle(name)
		if !ok {
			walkErr = fmt.Errorf("rule %q: %w: %s", source, items.ErrUnknownItem, name)
			return false
		}
		handles[name] = h
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return handles, nil
}

func hashRule(src string) string {
	sum := blake2b.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
