package transition

import (
	"testing"
)

func TestParseAction(t *testing.T) {
	for _, a := range []*Action{
		Shift(),
		ReduceLeft(),
		ReduceRight(),
		ReduceUp("NP", ""),
		ReduceUp("NP", "SB"),
		ReduceUpHat("PP", "MO"),
		ReduceToHat(-3),
		ReduceFromHat(2),
		{Kind: REDUCE_TO_HAT, Dir: RIGHT, FellowCat: "PP"},
		{Kind: REDUCE_FROM_HAT, Dir: LEFT, FellowCat: TOP_CATEGORY},
		Reduce("S", "", 1, []int{1, 2, 3}),
		Reduce("VP", "OC", 0, []int{4}),
		ReduceRoots([]int{1, 2}),
		ReduceRoots([]int{}),
	} {
		parsed, err := ParseAction(a.String())
		if err != nil {
			t.Error("Failed to parse", a, err)
			continue
		}
		if !parsed.Equal(a) {
			t.Error("Expected", a, "got", parsed)
		}
	}
}

func TestParseActionErrors(t *testing.T) {
	for _, bad := range []string{
		"",
		"pop",
		"reduceToHat(x)",
		"reduceToHat(up PP)",
		"reduce(NP,1)",
		"reduce(NP,h,[1])",
		"reduceRoots([a])",
		"reduceUp(NP",
	} {
		if _, err := ParseAction(bad); err == nil {
			t.Error("Expected error parsing", bad)
		}
	}
}

func TestActionEqual(t *testing.T) {
	a := Reduce("NP", "", 1, []int{1, 2})
	b := a.Copy()
	if !a.Equal(b) {
		t.Error("Copy should be equal")
	}
	b.Children[0] = 5
	if a.Children[0] != 1 {
		t.Error("Copy shares children")
	}
	if a.Equal(b) || a.Equal(nil) {
		t.Error("Different children should not be equal")
	}
	if ReduceToHat(1).Equal(ReduceFromHat(1)) {
		t.Error("Different kinds should not be equal")
	}
}

func TestParseSequence(t *testing.T) {
	s := "shift shift reduceUpHat(NP:SB) reduceToHat(right PP) reduce(S,1,[1 2]) reduceRoots([1])"
	seq, err := ParseSequence(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 6 {
		t.Fatal("Expected 6 actions, got", len(seq), seq)
	}
	if seq.String() != s {
		t.Error("Expected", s, "got", seq.String())
	}
	if empty, err := ParseSequence(""); err != nil || len(empty) != 0 {
		t.Error("Expected an empty sequence, got", empty, err)
	}
	for _, bad := range []string{"shift reduce(S,1,[1 2]", "shift pop"} {
		if _, err := ParseSequence(bad); err == nil {
			t.Error("Expected error parsing", bad)
		}
	}
}
