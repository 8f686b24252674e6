package board

import "testing"

func TestDefaultStateIsInternallyConsistent(t *testing.T) {
	state := DefaultState()
	if err := state.CheckIntegrity(); err != nil {
		t.Fatalf("default state fails integrity check: %v", err)
	}
	if len(state.ListOrder) == 0 {
		t.Fatal("default state has no lists")
	}
	if state.Config == nil || state.Config.Title != "Threadwell" {
		t.Fatalf("unexpected config: %+v", state.Config)
	}
}

func TestDefaultStateHasPermanentList(t *testing.T) {
	state := DefaultState()
	permanent := 0
	for _, list := range state.Lists {
		if list.IsPermanent {
			permanent++
			if !list.AllowsAIComponent {
				t.Fatalf("permanent seed list should allow agent participation: %+v", list)
			}
		}
	}
	if permanent == 0 {
		t.Fatal("default state must contain at least one permanent list")
	}
}

func TestDefaultStateGeneratesFreshIDs(t *testing.T) {
	a := DefaultState()
	b := DefaultState()
	for id := range a.Lists {
		if _, clash := b.Lists[id]; clash {
			t.Fatalf("list id %q reused across seeds", id)
		}
	}
	for id := range a.Cards {
		if _, clash := b.Cards[id]; clash {
			t.Fatalf("card id %q reused across seeds", id)
		}
	}
}
