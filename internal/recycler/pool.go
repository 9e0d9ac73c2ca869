package recycler

// DefaultMaxScrap is how many holders of one view type the pool keeps.
const DefaultMaxScrap = 5

// Pool keeps detached view holders by view type until a row of the same
// type needs one.
type Pool struct {
	scrap map[int][]*ViewHolder
	max   map[int]int
}

func NewPool() *Pool {
	return &Pool{scrap: make(map[int][]*ViewHolder), max: make(map[int]int)}
}

// SetMaxRecycledViews limits the holders kept for viewType.
func (p *Pool) SetMaxRecycledViews(viewType, max int) {
	p.max[viewType] = max
	if held := p.scrap[viewType]; len(held) > max {
		p.scrap[viewType] = held[:max]
	}
}

func (p *Pool) limit(viewType int) int {
	if m, ok := p.max[viewType]; ok {
		return m
	}
	return DefaultMaxScrap
}

// Put stores h and reports whether it was kept.
func (p *Pool) Put(h *ViewHolder) bool {
	held := p.scrap[h.viewType]
	if len(held) >= p.limit(h.viewType) {
		return false
	}
	h.position = NoPosition
	h.itemID = NoID
	h.stale = false
	p.scrap[h.viewType] = append(held, h)
	return true
}

// Get returns a pooled holder of viewType, or nil.
func (p *Pool) Get(viewType int) *ViewHolder {
	held := p.scrap[viewType]
	if len(held) == 0 {
		return nil
	}
	h := held[len(held)-1]
	p.scrap[viewType] = held[:len(held)-1]
	return h
}

// Count returns the holders kept for viewType.
func (p *Pool) Count(viewType int) int {
	return len(p.scrap[viewType])
}

// Clear drops every pooled holder.
func (p *Pool) Clear() {
	clear(p.scrap)
}
