package transition

import (
	"fmt"

	AbstractTransition "hatparse/alg/transition"
	nlp "hatparse/nlp/types"
	"hatparse/util/conf"
)

// System is a constituency transition system that can also set up the
// initial configuration it runs on.
type System interface {
	AbstractTransition.TransitionSystem
	NewConfiguration(sentence *nlp.Tree, gold *nlp.Graph) *Configuration
}

var (
	_ System = &Simple{}
	_ System = &Hat{}
	_ System = &WholeHat{}
)

var SystemNames = []string{"simple", "hat", "wholehat"}

func NewSystem(c *conf.Conf) (System, error) {
	oracle := Oracle{LeftFirst: c.LeftFirst}
	switch c.System {
	case "simple":
		return &Simple{oracle}, nil
	case "hat":
		return &Hat{Oracle: oracle, ViewMin: c.ViewMin, ViewMax: c.ViewMax, Compress: c.Compress}, nil
	case "wholehat":
		return &WholeHat{oracle}, nil
	default:
		return nil, fmt.Errorf("unknown transition system %q", c.System)
	}
}
