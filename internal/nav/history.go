package nav

// History is a back stack of locations. It always holds at least one entry.
type History struct {
	entries []Location
}

func NewHistory(start Location) *History {
	return &History{entries: []Location{start}}
}

func (h *History) Current() Location {
	return h.entries[len(h.entries)-1]
}

// Push moves to loc, keeping the current location for Back.
func (h *History) Push(loc Location) {
	h.entries = append(h.entries, loc)
}

// Replace rewrites the current location in place, as a page correction does.
func (h *History) Replace(loc Location) {
	h.entries[len(h.entries)-1] = loc
}

// Back pops the current location. It reports false when already at the
// first entry.
func (h *History) Back() (Location, bool) {
	if len(h.entries) == 1 {
		return h.Current(), false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), true
}

// Reset discards the stack and starts over at loc.
func (h *History) Reset(loc Location) {
	h.entries = []Location{loc}
}

func (h *History) Len() int { return len(h.entries) }
