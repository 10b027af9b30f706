package commands

import (
	"fmt"
	"sort"
	"strings"

	"Switchback/internal/logic"
	"Switchback/internal/world"
)

var Probe = Define(Definition{
	Name:        "probe",
	Usage:       "probe",
	Description: "assume and restore an entrance on a small graph, reporting fingerprints",
}, func(ctx *Context) error {
	w := world.New(0, world.WithSettings(ctx.Settings), world.WithLogger(ctx.Logger))
	regions := make(map[string]*world.Region)
	for _, name := range []string{"A", "B", "C"} {
		r, err := w.AddRegion(name)
		if err != nil {
			return err
		}
		regions[name] = r
	}
	if _, err := w.Link(w.Root(), regions["A"], "Root -> A"); err != nil {
		return err
	}
	ab, err := w.Link(regions["A"], regions["B"], "A -> B")
	if err != nil {
		return err
	}
	bc, err := w.Link(regions["B"], regions["C"], "B -> C")
	if err != nil {
		return err
	}
	if err := bc.ApplyRuleString(ctx.Compiler, `has("Bow", 1)`); err != nil {
		return err
	}

	inv := logic.NewInventory()
	evalCtx := logic.Context{Age: logic.Adult, TimeOfDay: logic.Day}
	before := w.Fingerprint()
	ctx.Printf("%-10s %s  reachable: %s\n", "initial", short(before), reachList(w, inv, evalCtx))

	placeholder, err := ab.AssumeReachable()
	if err != nil {
		return err
	}
	assumed := w.Fingerprint()
	ctx.Printf("%-10s %s  reachable: %s  via %s\n", "assumed", short(assumed),
		reachList(w, inv, evalCtx), ctx.Style(placeholder.Name, AnsiMagenta))

	if err := ab.Connect(regions["B"]); err != nil {
		return err
	}
	if err := ab.DiscardPlaceholder(); err != nil {
		return err
	}
	after := w.Fingerprint()
	ctx.Printf("%-10s %s  reachable: %s\n", "restored", short(after), reachList(w, inv, evalCtx))

	if after != before {
		return fmt.Errorf("probe: graph changed across assume and restore")
	}
	ctx.Printf("%s\n", ctx.Style("round trip ok", AnsiBold, AnsiGreen))
	return nil
})

func short(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}

func reachList(w *world.World, s logic.State, ctx logic.Context) string {
	reached := w.Reachable(s, ctx)
	names := make([]string, 0, len(reached))
	for name := range reached {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
