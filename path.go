package patternlock

import "strconv"

// Path is the ordered, duplicate-free sequence of target indices selected during
// one gesture. The zero value is an empty path.
type Path struct {
	indices []int
	member  map[int]struct{}
}

// Add appends index to the path. It returns false, leaving the path unchanged,
// when index is already present.
func (p *Path) Add(index int) bool {
	if p.Contains(index) {
		return false
	}
	if p.member == nil {
		p.member = make(map[int]struct{}, 9)
	}
	p.member[index] = struct{}{}
	p.indices = append(p.indices, index)
	return true
}

// Contains reports whether index has been selected.
func (p *Path) Contains(index int) bool {
	_, ok := p.member[index]
	return ok
}

// Len returns the number of selected targets.
func (p *Path) Len() int {
	return len(p.indices)
}

// Last returns the most recently selected index.
func (p *Path) Last() (int, bool) {
	if len(p.indices) == 0 {
		return -1, false
	}
	return p.indices[len(p.indices)-1], true
}

// Indices returns a copy of the selection order.
func (p *Path) Indices() []int {
	out := make([]int, len(p.indices))
	copy(out, p.indices)
	return out
}

// Password joins the indices as decimal digits in selection order.
func (p *Path) Password() string {
	b := make([]byte, 0, len(p.indices))
	for _, i := range p.indices {
		b = strconv.AppendInt(b, int64(i), 10)
	}
	return string(b)
}

// Reset empties the path, keeping its storage for the next gesture.
func (p *Path) Reset() {
	p.indices = p.indices[:0]
	clear(p.member)
}
