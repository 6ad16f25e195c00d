package anim

import "github.com/san-kum/pathviz/internal/grid"

// Marks is the render overlay produced by a replay. It never touches the
// grid itself.
type Marks map[grid.Coord]Mark

func NewMarks() Marks { return make(Marks) }

func (m Marks) Apply(steps ...Step) {
	for _, s := range steps {
		m[s.Coord] = s.Mark
	}
}

func (m Marks) Get(c grid.Coord) Mark { return m[c] }

func (m Marks) Clear() {
	for k := range m {
		delete(m, k)
	}
}

// Count returns how many cells currently hold mark.
func (m Marks) Count(mark Mark) int {
	n := 0
	for _, v := range m {
		if v == mark {
			n++
		}
	}
	return n
}
