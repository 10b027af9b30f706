package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"Switchback/internal/items"
	"Switchback/internal/logic"
	"Switchback/internal/settings"
)

var (
	// ErrUnknownCommand reports a command name nothing was registered under.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage reports arguments that do not match a command's usage line.
	ErrUsage = errors.New("usage")
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
}

// Handler executes a command.
type Handler func(*Context) error

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Env holds the long-lived collaborators every command runs against.
type Env struct {
	Registry *items.Registry
	Settings *settings.Settings
	Compiler *logic.Compiler
	Logger   *slog.Logger
	Out      io.Writer
	Color    bool
}

// Context provides the runtime data available to a command handler.
type Context struct {
	Env
	Args    []string
	Input   string
	Command *Command
}

// Printf writes formatted output.
func (ctx *Context) Printf(format string, args ...any) {
	fmt.Fprintf(ctx.Out, format, args...)
}

// Style applies ANSI attributes when color output is enabled.
func (ctx *Context) Style(text string, attrs ...string) string {
	if !ctx.Color {
		return text
	}
	return Style(text, attrs...)
}

// usage wraps ErrUsage with the command's usage line.
func (ctx *Context) usage() error {
	return fmt.Errorf("%w: %s", ErrUsage, ctx.Command.Usage)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Command)
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// Find looks up a command by name or alias.
func Find(name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// Dispatch looks up the command named by args[0] and executes it with the
// remaining arguments. An empty argument list runs help.
func Dispatch(env Env, args []string) error {
	if env.Logger == nil {
		env.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(args) == 0 {
		args = []string{"help"}
	}
	cmd, ok := Find(args[0])
	if !ok {
		return fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, args[0])
	}
	ctx := &Context{
		Env:     env,
		Args:    args[1:],
		Input:   args[0],
		Command: cmd,
	}
	env.Logger.Debug("dispatch", "command", cmd.Name, "args", len(ctx.Args))
	return cmd.Handler(ctx)
}
