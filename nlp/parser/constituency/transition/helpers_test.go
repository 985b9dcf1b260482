package transition

import (
	"testing"

	AbstractTransition "hatparse/alg/transition"
	"hatparse/nlp/format/bracket"
	nlp "hatparse/nlp/types"
	"hatparse/util/conf"
)

var TEST_TREES = []string{
	"(S (NP the cat) sat)",
	"(S (NP:SB (DT the) (JJ big) (NN^ cat)) (VP^ (VBD^ sat) (PP:MO (IN^ on) (NP (DT the) (NN^ mat)))) (. .))",
	"((A a) (B b))",
	"(S (NP:SB (DT the) (NN^ dog)) (VP^ (VBD^ saw) (NP:OA (DT a) (NN^ man)) (PP:MO (IN^ with) (NP (DT a) (NN^ telescope)))) (. .))",
	"(VP (VB^ eat) (NP (NN^ apples)) (ADVP (RB^ quickly)))",
	"(S (VP^ (VB^ go)))",
	"((S (NP (PRP^ he)) (VP^ (VBD^ ran))) (PUNC .) (S (NP (PRP^ she)) (VP^ (VBD^ walked))))",
	"(NP (DT the) (NN^ man) (PP (IN^ from) (NP (NNP^ Rome))) (SBAR (WP^ who) (VP (VBD^ left))))",
	"(S (VP^ (NP^ (NN^ dogs))))",
	"(NN dogs)",
}

func readTree(t *testing.T, s string) *nlp.Tree {
	trees, err := bracket.ReadString(s)
	if err != nil {
		t.Fatal("Failed to read", s, err)
	}
	if len(trees) != 1 {
		t.Fatal("Expected one tree in", s)
	}
	return trees[0]
}

func allSystems() map[string]System {
	systems := make(map[string]System)
	for _, name := range SystemNames {
		for _, leftFirst := range []bool{false, true} {
			c := conf.Default()
			c.System = name
			c.LeftFirst = leftFirst
			c.ViewMin, c.ViewMax = -1, 1
			c.Compress = name == "hat"
			sys, err := NewSystem(c)
			if err != nil {
				panic(err)
			}
			key := name
			if leftFirst {
				key += "/leftfirst"
			}
			systems[key] = sys
		}
	}
	return systems
}

// observe runs the oracle to a terminal configuration, checking the leaf
// and hat invariants after every action
func observe(t *testing.T, sys System, gold *nlp.Tree) (AbstractTransition.Sequence, *Configuration) {
	c := sys.NewConfiguration(gold, nlp.NewGraph(gold))
	var seq AbstractTransition.Sequence
	bound := 4*len(gold.Nodes) + 4
	for !c.Terminal() {
		if len(seq) > bound {
			t.Fatalf("[%s] no terminal configuration after %d actions for %s", sys.Name(), len(seq), gold)
		}
		a, err := sys.GetAction(c)
		if err != nil {
			t.Fatalf("[%s] oracle failed for %s: %v\nsequence: %v", sys.Name(), gold, err, seq)
		}
		seq = append(seq, a)
		step, ok := sys.StepAction(c, a)
		if !ok {
			t.Fatalf("[%s] could not resolve %v in %v", sys.Name(), a, c)
		}
		if err := sys.Apply(c, step); err != nil {
			t.Fatalf("[%s] %v", sys.Name(), err)
		}
		if err := c.Check(); err != nil {
			t.Fatalf("[%s] invariant broken after %v: %v\n%v", sys.Name(), a, err, c)
		}
	}
	return seq, c
}

// replay applies seq to a configuration without gold and reads off the parse
func replay(t *testing.T, sys System, gold *nlp.Tree, seq AbstractTransition.Sequence) *nlp.Tree {
	c := sys.NewConfiguration(gold, nil)
	for _, a := range seq {
		step, ok := sys.StepAction(c, a)
		if !ok {
			t.Fatalf("[%s] could not resolve %v in %v", sys.Name(), a, c)
		}
		if err := sys.Apply(c, step); err != nil {
			t.Fatalf("[%s] replay: %v", sys.Name(), err)
		}
		if err := c.Check(); err != nil {
			t.Fatalf("[%s] invariant broken after %v: %v", sys.Name(), a, err)
		}
	}
	if !c.Terminal() {
		t.Fatalf("[%s] replay ended in non-terminal %v", sys.Name(), c)
	}
	return c.CreateParse()
}

func seqStrings(seq AbstractTransition.Sequence) []string {
	strs := make([]string, len(seq))
	for i, a := range seq {
		strs[i] = a.String()
	}
	return strs
}
