package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"Switchback/internal/items"
)

var Items = Define(Definition{
	Name:        "items",
	Aliases:     []string{"list"},
	Usage:       "items [category]",
	Description: "list the item table with handles and categories",
}, func(ctx *Context) error {
	var filter items.Category
	if len(ctx.Args) > 0 {
		filter = items.Category(ctx.Args[0])
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, ctx.Style("HANDLE\tNAME\tTYPE\tFLAGS", AnsiBold))
	shown := 0
	for _, info := range ctx.Registry.All() {
		if filter != "" && !strings.EqualFold(string(info.Category), string(filter)) {
			continue
		}
		handle := "-"
		if info.Handle != items.NoHandle {
			handle = fmt.Sprint(int(info.Handle))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", handle, info.Name, info.Category, infoFlags(info))
		shown++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	ctx.Logger.Debug("listed items", "count", shown, "category", string(filter))
	return nil
})

var Item = Define(Definition{
	Name:        "item",
	Usage:       "item <name>",
	Description: "show one item's static metadata",
}, func(ctx *Context) error {
	name := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if name == "" {
		return ctx.usage()
	}
	info, err := resolveItem(ctx.Registry, name)
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", ctx.Style(info.Name, AnsiBold, AnsiCyan))
	ctx.Printf("  type:        %s\n", info.Category)
	ctx.Printf("  handle:      %s\n", handleString(info.Handle))
	ctx.Printf("  escaped:     %s\n", items.EscapeName(info.Name))
	ctx.Printf("  advancement: %s\n", ctx.flag(info.Advancement))
	ctx.Printf("  priority:    %s\n", ctx.flag(info.Priority))
	if info.HasIndex {
		ctx.Printf("  index:       %d\n", info.Index)
	}
	if info.Priced {
		ctx.Printf("  price:       %d\n", info.Price)
	}
	if info.IsJunk {
		ctx.Printf("  junk weight: %d\n", info.Junk)
	}
	if info.Alias != nil {
		ctx.Printf("  alias:       %s x%d\n", info.Alias.Name, info.Alias.Count)
	}
	if flags := infoFlags(info); flags != "" {
		ctx.Printf("  flags:       %s\n", flags)
	}
	return nil
})

func handleString(h items.Handle) string {
	if h == items.NoHandle {
		return "none"
	}
	return fmt.Sprint(int(h))
}

func infoFlags(info *items.Info) string {
	var flags []string
	if info.Advancement {
		flags = append(flags, "advancement")
	}
	if info.Priority {
		flags = append(flags, "priority")
	}
	if info.Bottle {
		flags = append(flags, "bottle")
	}
	if info.Medallion {
		flags = append(flags, "medallion")
	}
	if info.Stone {
		flags = append(flags, "stone")
	}
	if info.Trade {
		flags = append(flags, "trade")
	}
	if info.IsJunk {
		flags = append(flags, "junk")
	}
	return strings.Join(flags, ",")
}
