package commands

import (
	"fmt"
	"strings"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"?"},
	Usage:       "help [command]",
	Description: "show this message",
}, func(ctx *Context) error {
	if len(ctx.Args) > 0 {
		cmd, ok := Find(ctx.Args[0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, ctx.Args[0])
		}
		ctx.Printf("%s\n  %s\n", ctx.Style(cmd.Usage, AnsiBold), cmd.Description)
		return nil
	}
	ctx.Printf("%s", helpMessage(ctx, "Commands:", All()))
	return nil
})

func helpMessage(ctx *Context, title string, commands []*Command) string {
	var builder strings.Builder
	builder.WriteString(ctx.Style(title, AnsiBold, AnsiUnderline) + "\n")
	for _, cmd := range commands {
		usage := cmd.Usage
		if strings.TrimSpace(usage) == "" {
			usage = cmd.Name
		}
		builder.WriteString(fmt.Sprintf("  %-24s - %s\n", usage, cmd.Description))
	}
	return builder.String()
}
