package items

import (
	"errors"
	"testing"
)

func TestCopyIntoSameWorldBindsImmediately(t *testing.T) {
	r := defaultRegistry(t)
	original := newStubWorld(0, nil)
	clone := newStubWorld(0, nil)
	fixups := NewFixups()

	item := mustItem(t, r, "Buy Deku Shield", original)
	item.Price = 15

	copied, err := item.Copy(clone, fixups)
	if err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if copied.Owner() != clone {
		t.Fatalf("expected copy bound to the clone world")
	}
	if copied.Price != 15 {
		t.Fatalf("expected price 15, got %d", copied.Price)
	}
	if fixups.Pending() != 0 {
		t.Fatalf("expected no pending fixups, got %d", fixups.Pending())
	}
}

func TestDeferredCopyResolvesOnDrain(t *testing.T) {
	r := defaultRegistry(t)
	w0 := newStubWorld(0, nil)
	w1 := newStubWorld(1, nil)
	fixups := NewFixups()

	item := mustItem(t, r, "Bow", w1)

	pending, err := item.Copy(nil, fixups)
	if err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if pending.Owner() != nil {
		t.Fatalf("expected deferred copy to be unbound")
	}
	mismatched, err := item.Copy(w0, fixups)
	if err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if mismatched.Owner() != nil {
		t.Fatalf("expected copy into another world to be deferred")
	}
	if fixups.Pending() != 2 {
		t.Fatalf("expected 2 pending fixups, got %d", fixups.Pending())
	}
	if err := fixups.Verify(); !errors.Is(err, ErrUnresolvedFixups) {
		t.Fatalf("expected unresolved fixups, got %v", err)
	}

	n0 := newStubWorld(0, nil)
	n1 := newStubWorld(1, nil)
	if err := fixups.Drain([]Owner{n0, n1}); err != nil {
		t.Fatalf("Drain error: %v", err)
	}
	if pending.Owner() != n1 || mismatched.Owner() != n1 {
		t.Fatalf("expected both copies bound to the counterpart of world 1")
	}
	if err := fixups.Verify(); err != nil {
		t.Fatalf("expected no pending fixups, got %v", err)
	}
	if !fixups.Drained() {
		t.Fatalf("expected fixups to report drained")
	}

	if err := fixups.Drain([]Owner{n0, n1}); !errors.Is(err, ErrFixupsDrained) {
		t.Fatalf("expected second drain to fail, got %v", err)
	}
	if _, err := item.Copy(nil, fixups); !errors.Is(err, ErrFixupsDrained) {
		t.Fatalf("expected copy after drain to fail, got %v", err)
	}
}

func TestDrainReportsMissingWorld(t *testing.T) {
	r := defaultRegistry(t)
	fixups := NewFixups()
	item := mustItem(t, r, "Bow", newStubWorld(3, nil))
	if _, err := item.Copy(nil, fixups); err != nil {
		t.Fatalf("Copy error: %v", err)
	}

	if err := fixups.Drain([]Owner{newStubWorld(0, nil)}); !errors.Is(err, ErrUnresolvedFixups) {
		t.Fatalf("expected unresolved fixups, got %v", err)
	}
	if fixups.Pending() != 1 {
		t.Fatalf("expected 1 pending fixup, got %d", fixups.Pending())
	}
	if err := fixups.Verify(); !errors.Is(err, ErrUnresolvedFixups) {
		t.Fatalf("expected unresolved fixups, got %v", err)
	}
}

func TestCopyWithoutRegistry(t *testing.T) {
	r := defaultRegistry(t)
	item := mustItem(t, r, "Bow", newStubWorld(0, nil))
	if _, err := item.Copy(nil, nil); !errors.Is(err, ErrNoFixups) {
		t.Fatalf("expected missing fixups error, got %v", err)
	}

	unbound := mustItem(t, r, "Bow", nil)
	copied, err := unbound.Copy(nil, nil)
	if err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if copied.Owner() != nil {
		t.Fatalf("expected unbound copy to stay unbound")
	}
}
