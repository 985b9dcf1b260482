package app

import (
	"os"
	"path/filepath"
	"testing"

	"hatparse/alg/search"
	AbstractTransition "hatparse/alg/transition"
	"hatparse/nlp/format/bracket"
	"hatparse/nlp/parser/constituency/transition"
	nlp "hatparse/nlp/types"
	"hatparse/util/conf"
)

const TEST_CORPUS = `(S (NP:SB (DT the) (NN^ cat)) (VBD^ sat))
(S (NP (NP^ (NN^ dogs))))
((A a) (B b))
`

func writeCorpus(t *testing.T) string {
	filename := filepath.Join(t.TempDir(), "gold.txt")
	if err := os.WriteFile(filename, []byte(TEST_CORPUS), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestReadCorpus(t *testing.T) {
	filename := writeCorpus(t)
	trees, err := ReadCorpus(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 3 {
		t.Fatal("Expected 3 trees, got", len(trees))
	}
	if str := trees[1].String(); str != "(S (NP^ (NN^ dogs)))" {
		t.Error("Expected the NP cycle removed, got", str)
	}
	limit = 2
	defer func() { limit = 0 }()
	if trees, _ = ReadCorpus(filename); len(trees) != 2 {
		t.Error("Expected the limit to apply, got", len(trees))
	}
}

func TestReconstruct(t *testing.T) {
	trees, err := ReadCorpus(writeCorpus(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range transition.SystemNames {
		c := conf.Default()
		c.System = name
		c.Compress = true
		system, err := transition.NewSystem(c)
		if err != nil {
			t.Fatal(err)
		}
		d := &search.Deterministic{TransFunc: system}
		for _, gold := range trees {
			parsed, result := Reconstruct(system, d, gold)
			if result.Err != nil {
				t.Errorf("[%s] %v", name, result.Err)
				continue
			}
			if !nlp.Equal(gold, parsed) || result.Output != bracket.Format(parsed) {
				t.Errorf("[%s] wrong parse %s", name, result.Output)
			}
		}
	}
}

func TestReconstructFailure(t *testing.T) {
	gold := nlp.NewTree("gap")
	a := gold.AddLeaf("a", "", "")
	b := gold.AddLeaf("b", "", "")
	c := gold.AddLeaf("c", "", "")
	x := gold.NewInternal("x", "X", "")
	gold.AddChild(x, a, true)
	gold.AddChild(x, c, false)
	gold.AddRoot(x)
	gold.AddRoot(b)
	gold.Normalize()

	system := &transition.Simple{}
	_, result := Reconstruct(system, &search.Deterministic{TransFunc: system}, gold)
	if AbstractTransition.ErrorKind(result.Err) != "oracle" {
		t.Error("Expected the simple oracle to reject a discontinuous tree")
	}
}
