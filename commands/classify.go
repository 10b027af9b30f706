package commands

import (
	"strings"

	"Switchback/internal/world"
)

var Classify = Define(Definition{
	Name:        "classify",
	Usage:       "classify <name>",
	Description: "show settings-dependent classification under --settings",
}, func(ctx *Context) error {
	name := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if name == "" {
		return ctx.usage()
	}
	info, err := resolveItem(ctx.Registry, name)
	if err != nil {
		return err
	}
	owner := world.New(0, world.WithSettings(ctx.Settings), world.WithLogger(ctx.Logger))
	item, err := ctx.Registry.NewItem(info.Name, owner)
	if err != nil {
		return err
	}
	ctx.Printf("%s (%s)\n", ctx.Style(item.Name, AnsiBold, AnsiCyan), item.Category())
	ctx.Printf("  advancement:        %s\n", ctx.flag(item.Advancement()))
	ctx.Printf("  major item:         %s\n", ctx.flag(item.MajorItem()))
	ctx.Printf("  dungeon item:       %s\n", ctx.flag(item.DungeonItem()))
	ctx.Printf("  unshuffled dungeon: %s\n", ctx.flag(item.UnshuffledDungeonItem()))
	ctx.Printf("  small key:          %s\n", ctx.flag(item.SmallKey()))
	ctx.Printf("  boss key:           %s\n", ctx.flag(item.BossKey()))
	ctx.Printf("  map/compass:        %s\n", ctx.flag(item.Map() || item.Compass()))
	return nil
})
