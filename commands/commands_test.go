package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"Switchback/internal/items"
	"Switchback/internal/logic"
	"Switchback/internal/settings"
)

func newTestEnv(t *testing.T, configure func(*settings.Settings)) (Env, *bytes.Buffer) {
	t.Helper()
	reg, err := items.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry error: %v", err)
	}
	s := settings.Default()
	if configure != nil {
		configure(s)
	}
	out := &bytes.Buffer{}
	return Env{
		Registry: reg,
		Settings: s,
		Compiler: logic.NewCompiler(reg),
		Out:      out,
	}, out
}

func TestDefineRejectsDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	Define(Definition{Name: "ITEMS"}, func(*Context) error { return nil })
}

func TestAllIsSorted(t *testing.T) {
	all := All()
	if len(all) < 5 {
		t.Fatalf("expected the built-in commands, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("commands not sorted: %s before %s", all[i-1].Name, all[i].Name)
		}
	}
	if cmd, ok := Find("EVAL"); !ok || cmd != RuleCmd {
		t.Fatalf("expected alias lookup to find rule")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	env, _ := newTestEnv(t, nil)
	if err := Dispatch(env, []string{"teleport"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestDispatchDefaultsToHelp(t *testing.T) {
	env, out := newTestEnv(t, nil)
	if err := Dispatch(env, nil); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	for _, want := range []string{"Commands:", "classify <name>", "probe"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("help output missing %q: %s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("expected plain output without color")
	}
}

func TestItemsFiltersByCategory(t *testing.T) {
	env, out := newTestEnv(t, nil)
	if err := Dispatch(env, []string{"items", "Song"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Minuet of Forest") {
		t.Fatalf("expected songs in output: %s", text)
	}
	if strings.Contains(text, "Bow") {
		t.Fatalf("expected non-songs to be filtered: %s", text)
	}
}

func TestItemShowsMetadata(t *testing.T) {
	env, out := newTestEnv(t, nil)
	if err := Dispatch(env, []string{"item", "Heart", "Container"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(out.String(), "Piece of Heart x4") {
		t.Fatalf("expected alias in output: %s", out.String())
	}
	if err := Dispatch(env, []string{"item", "Master", "Sword", "of", "Ages"}); !errors.Is(err, items.ErrUnknownItem) {
		t.Fatalf("expected unknown item error, got %v", err)
	}
	if err := Dispatch(env, []string{"item"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestClassifyFollowsSettings(t *testing.T) {
	env, out := newTestEnv(t, nil)
	if err := Dispatch(env, []string{"classify", "Small Key (Forest Temple)"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(out.String(), "major item:         no") {
		t.Fatalf("expected dungeon keys not to be major: %s", out.String())
	}

	env, out = newTestEnv(t, func(s *settings.Settings) { s.ShuffleSmallKeys = "keysanity" })
	if err := Dispatch(env, []string{"classify", "Small Key (Forest Temple)"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(out.String(), "major item:         yes") {
		t.Fatalf("expected keysanity keys to be major: %s", out.String())
	}
}

func TestRuleEvaluatesAgainstInventory(t *testing.T) {
	env, out := newTestEnv(t, nil)
	expr := `has("Progressive Hookshot", 2) && age() == "adult"`

	if err := Dispatch(env, []string{"rule", expr, "--have", "Progressive Hookshot"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "false" {
		t.Fatalf("expected false with one hookshot, got %q", out.String())
	}

	out.Reset()
	args := []string{"rule", expr, "--have", "Progressive Hookshot,Progressive Hookshot"}
	if err := Dispatch(env, args); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "true" {
		t.Fatalf("expected true with two hookshots, got %q", out.String())
	}

	out.Reset()
	if err := Dispatch(env, append(args, "--age", "child")); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "false" {
		t.Fatalf("expected false as child, got %q", out.String())
	}
}

func TestRuleCountsAliasesAndEvents(t *testing.T) {
	env, out := newTestEnv(t, nil)
	args := []string{"rule", `count("Piece of Heart") >= 4 && flag("Drain Well")`, "--have", "Heart Container,Drain Well"}
	if err := Dispatch(env, args); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "true" {
		t.Fatalf("expected true, got %q", out.String())
	}
}

func TestRuleErrors(t *testing.T) {
	env, _ := newTestEnv(t, nil)
	if err := Dispatch(env, []string{"rule"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := Dispatch(env, []string{"rule", "True", "--tod", "noon"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for bad tod, got %v", err)
	}
	if err := Dispatch(env, []string{"rule", `has("Bow", 1)`, "--have", "Slingshot of Doom"}); !errors.Is(err, items.ErrUnknownItem) {
		t.Fatalf("expected unknown item error, got %v", err)
	}
	if err := Dispatch(env, []string{"rule", `has("Bow",`}); !errors.Is(err, logic.ErrRuleSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestRoundTripCommandReportsFingerprints(t *testing.T) {
	env, out := newTestEnv(t, nil)
	env.Color = true
	if err := Dispatch(env, []string{"probe"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "round trip ok") {
		t.Fatalf("expected round trip confirmation: %s", text)
	}
	if !strings.Contains(text, "Root -> B") {
		t.Fatalf("expected placeholder name in output: %s", text)
	}
	if !strings.Contains(text, AnsiGreen) {
		t.Fatalf("expected colored output")
	}
}

func TestItemResolvesPartialNames(t *testing.T) {
	env, out := newTestEnv(t, nil)
	if err := Dispatch(env, []string{"item", "hookshot"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(out.String(), "Progressive Hookshot") {
		t.Fatalf("expected word prefix to resolve: %s", out.String())
	}
	if err := Dispatch(env, []string{"classify", "small", "key"}); !errors.Is(err, ErrAmbiguousItem) {
		t.Fatalf("expected ambiguous item error, got %v", err)
	}
}
