package namegen

import "math/rand"

// shuffle is swappable so tests can pin a deterministic order
var shuffle = func(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// product walks the cross product of its dims with an odometer: the
// rightmost dimension advances fastest, and a full wraparound marks
// exhaustion. Each dim is an independently shuffled copy of its source
// collection, so the walk covers every combination exactly once in an
// order that differs per construction
type product struct {
	dims [][]string
	idx  []int
	done bool

	// join assembles one output from the current combination
	join func(parts []string) string

	// skip, when set, suppresses combinations (by value) without ending the walk
	skip func(parts []string) bool
}

func newProduct(join func([]string) string, skip func([]string) bool, dims ...[]string) *product {
	p := &product{
		dims: make([][]string, len(dims)),
		idx:  make([]int, len(dims)),
		join: join,
		skip: skip,
	}
	for i, d := range dims {
		if len(d) == 0 {
			p.done = true
			return p
		}
		cp := make([]string, len(d))
		copy(cp, d)
		shuffle(len(cp), func(a, b int) { cp[a], cp[b] = cp[b], cp[a] })
		p.dims[i] = cp
	}
	if len(dims) == 0 {
		p.done = true
	}
	return p
}

func (p *product) next() (string, bool) {
	for {
		if p.done {
			return "", false
		}
		parts := make([]string, len(p.dims))
		for i := range p.dims {
			parts[i] = p.dims[i][p.idx[i]]
		}
		emit := p.skip == nil || !p.skip(parts)
		p.advance()
		if emit {
			return p.join(parts), true
		}
	}
}

func (p *product) advance() {
	for i := len(p.idx) - 1; i >= 0; i-- {
		p.idx[i]++
		if p.idx[i] < len(p.dims[i]) {
			return
		}
		p.idx[i] = 0
	}
	p.done = true
}
