package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"Switchback/internal/items"
	"Switchback/internal/logic"
)

var RuleCmd = Define(Definition{
	Name:        "rule",
	Aliases:     []string{"eval"},
	Usage:       "rule <expr> [--have a,b] [--age adult] [--tod day]",
	Description: "compile a rule and evaluate it against an inventory",
}, func(ctx *Context) error {
	fs := pflag.NewFlagSet("rule", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	have := fs.StringSlice("have", nil, "items or events held; repeat a name to hold several")
	age := fs.String("age", string(logic.Adult), "child or adult")
	tod := fs.String("tod", string(logic.Day), "day, dampe or night")
	if err := fs.Parse(ctx.Args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	source := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if source == "" {
		return ctx.usage()
	}
	evalCtx, err := parseContext(*age, *tod)
	if err != nil {
		return err
	}

	rule, err := ctx.Compiler.Compile(source)
	if err != nil {
		return err
	}
	inv, err := buildInventory(ctx.Registry, *have)
	if err != nil {
		return err
	}
	result := rule(inv, evalCtx)
	ctx.Logger.Debug("evaluated rule", "rule", source, "held", len(*have), "result", result)
	if result {
		ctx.Printf("%s\n", ctx.Style("true", AnsiBold, AnsiGreen))
	} else {
		ctx.Printf("%s\n", ctx.Style("false", AnsiBold, AnsiYellow))
	}
	return nil
})

func parseContext(age, tod string) (logic.Context, error) {
	var out logic.Context
	switch logic.Age(strings.ToLower(age)) {
	case logic.Child:
		out.Age = logic.Child
	case logic.Adult:
		out.Age = logic.Adult
	default:
		return out, fmt.Errorf("%w: age must be child or adult, got %q", ErrUsage, age)
	}
	switch logic.TimeOfDay(strings.ToLower(tod)) {
	case logic.Day:
		out.TimeOfDay = logic.Day
	case logic.Dampe:
		out.TimeOfDay = logic.Dampe
	case logic.Night:
		out.TimeOfDay = logic.Night
	default:
		return out, fmt.Errorf("%w: tod must be day, dampe or night, got %q", ErrUsage, tod)
	}
	return out, nil
}

// buildInventory collects table items, including their aliases, and sets
// event flags. Event names are only known once a rule mentioning them has
// been compiled.
func buildInventory(reg *items.Registry, names []string) (*logic.Inventory, error) {
	inv := logic.NewInventory()
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if reg.Known(name) {
			item, err := reg.NewItem(name, nil)
			if err != nil {
				return nil, err
			}
			inv.Collect(item)
			continue
		}
		h, ok := reg.Handle(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", items.ErrUnknownItem, name)
		}
		inv.Add(h, 1)
	}
	return inv, nil
}
