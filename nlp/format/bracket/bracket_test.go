package bracket

import (
	"bytes"
	"testing"

	nlp "hatparse/nlp/types"
)

const TEST_TREES = `(S (NP:SB (DT the) (JJ big) (NN^ cat)) (VP^ (VBD^ sat) (PP:MO (IN^ on) (NP (DT the) (NN^ mat)))) (. .))
(S (NP the cat^) sat^)
((A a) (B b))
(S=s1 (NP=np1:OA x y) z)
`

func TestRead(t *testing.T) {
	trees, err := ReadString(TEST_TREES)
	if err != nil {
		t.Fatal("Failed to read trees:", err)
	}
	if len(trees) != 4 {
		t.Fatal("Expected 4 trees, got", len(trees))
	}

	first := trees[0]
	if first.Len() != 8 {
		t.Error("Expected 8 leaves, got", first.Len())
	}
	if first.Name != "1" {
		t.Error("Expected name 1, got", first.Name)
	}
	root := first.Roots[0]
	if first.Node(root).Category != "S" {
		t.Error("Expected S root")
	}
	if first.Node(first.HeadChild(root)).Category != "VP" {
		t.Error("Expected VP to head S")
	}
	if first.Node(root).ID != "#500" {
		t.Error("Expected first synthetic id #500, got", first.Node(root).ID)
	}
	np := first.Node(root).Children[0]
	if first.Node(np).Label != "SB" {
		t.Error("Expected label SB on NP, got", first.Node(np).Label)
	}

	second := trees[1]
	np = second.Node(second.Roots[0]).Children[0]
	if second.Node(second.HeadChild(np)).Form != "cat" {
		t.Error("Expected bare word cat^ to head NP")
	}

	third := trees[2]
	if len(third.Roots) != 2 {
		t.Fatal("Expected 2 roots, got", len(third.Roots))
	}
	if !third.IsLeaf(third.Roots[0]) || third.Node(third.Roots[1]).Category != "B" {
		t.Error("Expected leaf roots (A a) (B b)")
	}

	fourth := trees[3]
	if _, exists := fourth.Lookup("s1"); !exists {
		t.Error("Expected explicit id s1")
	}
	if n, exists := fourth.Lookup("np1"); !exists || fourth.Node(n).Label != "OA" {
		t.Error("Expected explicit id np1 with label OA")
	}
	if head := fourth.HeadChild(fourth.Roots[0]); fourth.Node(head).Form != "z" {
		t.Error("Expected unmarked head to default to the last child")
	}
}

func TestRoundTrip(t *testing.T) {
	trees, err := ReadString(TEST_TREES)
	if err != nil {
		t.Fatal("Failed to read trees:", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, trees); err != nil {
		t.Fatal("Failed to write trees:", err)
	}
	again, err := Read(&buf)
	if err != nil {
		t.Fatal("Failed to read written trees:", err, "\n", buf.String())
	}
	if len(again) != len(trees) {
		t.Fatal("Expected", len(trees), "trees, got", len(again))
	}
	for i := range trees {
		if !nlp.Equal(trees[i], again[i]) {
			t.Error("Round trip changed tree", i, "\n", Format(trees[i]), "\n", Format(again[i]))
		}
	}
}

func TestReadErrors(t *testing.T) {
	for _, bad := range []string{
		"(S (NP the cat)",
		"(S ())",
		"(S)",
		"S",
		"(S=x (NP=x the cat) sat)",
		"(S=x (NP the cat) (VP=x sat))",
	} {
		if _, err := ReadString(bad); err == nil {
			t.Error("Expected error reading", bad)
		}
	}
}

func TestReadSyntheticIDs(t *testing.T) {
	trees, err := ReadString("(S (NP=#500 the cat^) (VP^ (VBD^ sat)))")
	if err != nil {
		t.Fatal("Failed to read tree:", err)
	}
	tree := trees[0]
	root := tree.Roots[0]
	if id := tree.Node(root).ID; id != "#501" {
		t.Error("Expected the root to skip the explicit #500, got", id)
	}
	np, exists := tree.Lookup("#500")
	if !exists || tree.Node(np).Category != "NP" {
		t.Error("Expected #500 to stay on NP")
	}
	if vp := tree.HeadChild(root); tree.Node(vp).ID != "#502" {
		t.Error("Expected VP to get #502, got", tree.Node(vp).ID)
	}
	for _, c := range tree.Node(np).Children {
		if c == np {
			t.Fatal("NP is its own child")
		}
	}
	if str := tree.String(); str != "(S (NP the cat^) (VP^ (VBD^ sat)))" {
		t.Error("Unexpected tree", str)
	}
}
