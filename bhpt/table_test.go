package bhpt

import (
	"strings"
	"testing"
)

func TestTable_NewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{Capacity: 0, HistoryLength: 4}); err == nil {
		t.Fatal("expected New to reject an invalid config")
	}
}

func TestTable_NewHonorsExplicitSeed(t *testing.T) {
	tbl, err := New(Config{Capacity: 2, HistoryLength: 4, Seed: 99, SeedSet: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tbl.Seed() != 99 {
		t.Fatalf("expected seed 99, got %d", tbl.Seed())
	}
}

func TestTable_NewAccessorsReflectConfig(t *testing.T) {
	tbl, err := New(Config{Capacity: 5, HistoryLength: 10, ConsiderationDepth: 6})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tbl.Capacity() != 5 || tbl.HistoryLength() != 10 || tbl.ConsiderationDepth() != 6 {
		t.Fatalf("accessors did not reflect config: %+v", tbl)
	}
}

func TestTable_StringIncludesConfiguration(t *testing.T) {
	tbl, err := New(Config{Capacity: 3, HistoryLength: 4, MWSP: 1, MWSPSet: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := tbl.String()
	for _, want := range []string{"capacity=3", "history_length=4", "mwsp=1"} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected String() to contain %q, got %q", want, s)
		}
	}
}

func TestTable_HistoryOfOutOfRange(t *testing.T) {
	tbl, err := New(Config{Capacity: 2, HistoryLength: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := tbl.HistoryOf(10); err == nil {
		t.Fatal("expected an error for an out-of-range index")
	}
}

func TestTable_PushRevalidatesFreeIndex(t *testing.T) {
	tbl, err := New(Config{Capacity: 2, HistoryLength: 4, Seed: 1, SeedSet: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.Push(0, 1); err != nil {
		t.Fatalf("Push on a never-inserted index: %v", err)
	}
	if !tbl.valid.isValid(0) {
		t.Fatal("expected Push to implicitly revalidate a free index")
	}
}

func TestTable_PushRejectsNonBinaryState(t *testing.T) {
	tbl, err := New(Config{Capacity: 2, HistoryLength: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.Push(0, 2); err == nil {
		t.Fatal("expected an error for a non-binary state")
	}
}

func TestTable_SetMWSPValidatesRange(t *testing.T) {
	tbl, err := New(Config{Capacity: 2, HistoryLength: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.SetMWSP(4); err == nil {
		t.Fatal("expected an error for mwsp == N")
	}
	if err := tbl.SetMWSP(2); err != nil {
		t.Fatalf("SetMWSP: %v", err)
	}
	if tbl.mwsp != 2 {
		t.Fatalf("expected mwsp 2, got %d", tbl.mwsp)
	}
}

func TestTable_SetMWSPRecomputesEagerly(t *testing.T) {
	tbl, err := New(Config{Capacity: 1, HistoryLength: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	idx, _ := tbl.Insert(0, 0, 0, 0)
	if tbl.weights[idx] != 0 {
		t.Fatalf("expected zero weight before MWSP, got %v", tbl.weights[idx])
	}
	if err := tbl.SetMWSP(1); err != nil {
		t.Fatalf("SetMWSP: %v", err)
	}
	if tbl.weights[idx] == 0 {
		t.Fatal("expected SetMWSP to eagerly recompute weights when Defer is false")
	}
}

func TestTable_SetDeferTogglesConfig(t *testing.T) {
	tbl, err := New(Config{Capacity: 2, HistoryLength: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tbl.SetDefer(true)
	if !tbl.cfg.Defer {
		t.Fatal("expected SetDefer(true) to enable deferred mode")
	}
	tbl.SetDefer(false)
	if tbl.cfg.Defer {
		t.Fatal("expected SetDefer(false) to disable deferred mode")
	}
}
