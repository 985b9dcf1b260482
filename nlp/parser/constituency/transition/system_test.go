package transition

import (
	"reflect"
	"testing"

	"hatparse/nlp/format/bracket"
	nlp "hatparse/nlp/types"
	"hatparse/util/conf"
)

func TestReconstruction(t *testing.T) {
	for name, sys := range allSystems() {
		for _, s := range TEST_TREES {
			gold := readTree(t, s)
			seq, _ := observe(t, sys, gold)
			parsed := replay(t, sys, gold, seq)
			if !nlp.Equal(gold, parsed) {
				t.Errorf("[%s] reconstruction failed\n  gold:   %s\n  parsed: %s\n  actions: %v",
					name, bracket.Format(gold), bracket.Format(parsed), seq)
			}
		}
	}
}

func TestObservedParseKeepsGoldIDs(t *testing.T) {
	for name, sys := range allSystems() {
		gold := readTree(t, "(S=s (NP=np (DT the) (NN^ cat)) (VBD^ sat))")
		_, c := observe(t, sys, gold)
		parsed := c.CreateParse()
		for _, id := range []string{"s", "np"} {
			if _, exists := parsed.Lookup(id); !exists {
				t.Errorf("[%s] expected gold id %s in the observed parse", name, id)
			}
		}
	}
}

func TestSimpleScenario(t *testing.T) {
	sys := &Simple{}
	gold := readTree(t, "(S (NP the cat) sat)")
	seq, c := observe(t, sys, gold)
	expected := []string{
		"shift",
		"shift",
		"reduceUp(NP)",
		"reduceLeft",
		"shift",
		"reduceUp(S)",
		"reduceLeft",
		"reduceRight",
	}
	if !reflect.DeepEqual(seqStrings(seq), expected) {
		t.Error("Expected", expected, "got", seqStrings(seq))
	}
	parsed := c.CreateParse()
	if len(parsed.Roots) != 1 {
		t.Fatal("Expected one root, got", len(parsed.Roots))
	}
	root := parsed.Node(parsed.Roots[0])
	if root.Category != "S" || len(root.Children) != 2 {
		t.Fatal("Expected S with two children, got", parsed)
	}
	if parsed.Node(root.Children[0]).Category != "NP" || parsed.Node(root.Children[1]).Form != "sat" {
		t.Error("Expected children in leaf order [NP sat], got", parsed)
	}
}

func TestHatScenario(t *testing.T) {
	sys := &Hat{ViewMin: -2, ViewMax: 2}
	gold := readTree(t, "(S (NP the cat) sat)")
	seq, _ := observe(t, sys, gold)
	expected := []string{
		"shift",
		"shift",
		"reduceUpHat(NP)",
		"reduceToHat(-1)",
		"shift",
		"reduceUpHat(S)",
		"reduceToHat(-1)",
		"reduceFromHat(-1)",
	}
	if !reflect.DeepEqual(seqStrings(seq), expected) {
		t.Error("Expected", expected, "got", seqStrings(seq))
	}
}

func TestWholeHatScenario(t *testing.T) {
	sys := &WholeHat{}
	gold := readTree(t, "(S (NP the cat) sat)")
	seq, _ := observe(t, sys, gold)
	expected := []string{
		"shift",
		"shift",
		"reduce(NP,1,[1 2])",
		"shift",
		"reduce(S,1,[1 2])",
		"reduceRoots([1])",
	}
	if !reflect.DeepEqual(seqStrings(seq), expected) {
		t.Error("Expected", expected, "got", seqStrings(seq))
	}
}

func TestAttachmentOrder(t *testing.T) {
	gold := readTree(t, "(S (NP (PRP^ he)) (VBD^ ran) (. .))")
	right, _ := observe(t, &Simple{Oracle{LeftFirst: false}}, gold)
	left, _ := observe(t, &Simple{Oracle{LeftFirst: true}}, gold)
	// right first: the period attaches before the subject
	expectedRight := []string{"shift", "reduceUp(NP)", "shift", "reduceUp(S)", "shift", "reduceRight", "reduceLeft", "reduceRight"}
	expectedLeft := []string{"shift", "reduceUp(NP)", "shift", "reduceUp(S)", "reduceLeft", "shift", "reduceRight", "reduceRight"}
	if !reflect.DeepEqual(seqStrings(right), expectedRight) {
		t.Error("Expected", expectedRight, "got", seqStrings(right))
	}
	if !reflect.DeepEqual(seqStrings(left), expectedLeft) {
		t.Error("Expected", expectedLeft, "got", seqStrings(left))
	}
}

func nonProjectiveTree() *nlp.Tree {
	gold := nlp.NewTree("nonprojective")
	a := gold.AddLeaf("a", "", "")
	b := gold.AddLeaf("b", "", "")
	c := gold.AddLeaf("c", "", "")
	x := gold.NewInternal("x", "X", "")
	y := gold.NewInternal("y", "Y", "")
	// X covers a and c, Y covers b
	gold.AddChild(x, a, true)
	gold.AddChild(x, c, false)
	gold.AddChild(y, b, true)
	gold.AddRoot(x)
	gold.AddRoot(y)
	gold.Normalize()
	return gold
}

func TestNonProjectiveGoldFails(t *testing.T) {
	gold := nonProjectiveTree()
	for _, sys := range []System{&Simple{}, &WholeHat{}} {
		c := sys.NewConfiguration(gold, nlp.NewGraph(gold))
		var err error
		for steps := 0; !c.Terminal() && steps < 50; steps++ {
			action, oracleErr := sys.GetAction(c)
			if oracleErr != nil {
				err = oracleErr
				break
			}
			if err = sys.Apply(c, action); err != nil {
				break
			}
		}
		if err == nil {
			t.Errorf("[%s] expected an error for a non-projective gold tree, reached %v", sys.Name(), c)
		}
	}
}

// A fellow may sit anywhere on the stack, so the hat system attaches
// across an intervening constituent
func TestHatNonProjective(t *testing.T) {
	gold := nonProjectiveTree()
	sys := &Hat{ViewMin: -2, ViewMax: 2}
	seq, _ := observe(t, sys, gold)
	parsed := replay(t, sys, gold, seq)
	if !nlp.Equal(gold, parsed) {
		t.Error("Expected", gold, "got", parsed, "from", seq)
	}
}

func TestNewSystem(t *testing.T) {
	c := conf.Default()
	for _, name := range SystemNames {
		c.System = name
		sys, err := NewSystem(c)
		if err != nil {
			t.Fatal("Failed to create", name, err)
		}
		if sys.Name() != name {
			t.Error("Expected system", name, "got", sys.Name())
		}
	}
	c.System = "arceager"
	if _, err := NewSystem(c); err == nil {
		t.Error("Expected error for unknown system")
	}
}
