package transition

// TOP_CATEGORY names the top placeholder in compressed fellow references
const TOP_CATEGORY = "TOP"

func slotCategory(c *Configuration, abs int) string {
	if c.Stack[abs].Node == c.Top {
		return TOP_CATEGORY
	}
	return c.Category(abs)
}

// InWindow reports whether a relative fellow index can be given numerically
func (h *Hat) InWindow(rel int) bool {
	return rel >= h.ViewMin && rel <= h.ViewMax
}

// CompressAction rewrites a fellow outside [ViewMin, ViewMax] as its
// direction and the category of the fellow's node. Other actions are
// returned unchanged.
func (h *Hat) CompressAction(c *Configuration, a *Action) *Action {
	if !a.IsFellow() || a.Compressed() || h.InWindow(a.Fellow) {
		return a
	}
	abs := c.Abs(a.Fellow)
	if abs < 0 || abs >= len(c.Stack) {
		return a
	}
	compressed := &Action{Kind: a.Kind, FellowCat: slotCategory(c, abs)}
	if a.Fellow < h.ViewMin {
		compressed.Dir = LEFT
	} else {
		compressed.Dir = RIGHT
	}
	return compressed
}

// Decompress finds the slot a compressed action refers to: the first slot
// of the action's category scanning outward from the window edge. When
// several slots beyond the edge share the category the nearest one wins,
// which need not be the slot the action was compressed from.
func (h *Hat) Decompress(c *Configuration, a *Action) (*Action, bool) {
	if !a.Compressed() {
		return a, true
	}
	switch a.Dir {
	case LEFT:
		for abs := c.Abs(h.ViewMin) - 1; abs >= 0; abs-- {
			if abs < len(c.Stack) && slotCategory(c, abs) == a.FellowCat {
				return &Action{Kind: a.Kind, Fellow: c.Rel(abs)}, true
			}
		}
	case RIGHT:
		for abs := c.Abs(h.ViewMax) + 1; abs < len(c.Stack); abs++ {
			if abs >= 0 && slotCategory(c, abs) == a.FellowCat {
				return &Action{Kind: a.Kind, Fellow: c.Rel(abs)}, true
			}
		}
	}
	return nil, false
}
