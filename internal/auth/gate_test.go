package auth

import "testing"

func TestGateAllowsListedParties(t *testing.T) {
	gate := NewGate([]int64{42, 77})
	if !gate.Allowed(42) {
		t.Fatal("expected listed party to be allowed")
	}
	if gate.Allowed(99) {
		t.Fatal("expected unlisted party to be denied")
	}
}

func TestEmptyGateAllowsEveryone(t *testing.T) {
	gate := NewGate(nil)
	if !gate.Allowed(12345) {
		t.Fatal("expected open gate to allow everyone")
	}
}

func TestParseAllowList(t *testing.T) {
	ids := ParseAllowList(" 42, 77,, abc, 100 ")
	want := []int64{42, 77, 100}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected id %d at %d, got %d", id, i, ids[i])
		}
	}
}

func TestParseAllowListEmpty(t *testing.T) {
	if ids := ParseAllowList(""); len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}
