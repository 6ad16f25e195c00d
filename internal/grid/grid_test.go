package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countEndpoints(g Grid) (starts, finishes int) {
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			n, _ := g.Node(r, c)
			if n.IsStart {
				starts++
			}
			if n.IsFinish {
				finishes++
			}
		}
	}
	return starts, finishes
}

func TestDefaultGrid(t *testing.T) {
	g := Default()

	assert.Equal(t, 50, g.Width())
	assert.Equal(t, 20, g.Height())
	assert.Equal(t, Coord{Row: 10, Col: 15}, g.Start())
	assert.Equal(t, Coord{Row: 10, Col: 35}, g.Finish())
	assert.Zero(t, g.WallCount())

	starts, finishes := countEndpoints(g)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, finishes)
}

func TestNew_Configuration(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		start, finish Coord
	}{
		{"same endpoints", 10, 10, Coord{1, 1}, Coord{1, 1}},
		{"start outside", 10, 10, Coord{10, 0}, Coord{1, 1}},
		{"finish outside", 10, 10, Coord{0, 0}, Coord{0, -1}},
		{"zero width", 0, 10, Coord{0, 0}, Coord{1, 0}},
		{"zero height", 10, 0, Coord{0, 0}, Coord{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, tt.start, tt.finish)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestToggleWall_Involution(t *testing.T) {
	g := Default()

	once, err := g.ToggleWall(3, 4)
	require.NoError(t, err)
	assert.True(t, once.IsWall(3, 4))
	assert.False(t, g.IsWall(3, 4), "original snapshot must stay untouched")

	twice, err := once.ToggleWall(3, 4)
	require.NoError(t, err)
	assert.True(t, twice.Equal(g))
}

func TestToggleWall_Endpoints(t *testing.T) {
	g := Default()

	for _, c := range []Coord{g.Start(), g.Finish()} {
		out, err := g.ToggleWall(c.Row, c.Col)
		assert.ErrorIs(t, err, ErrInvalidOperation)
		assert.False(t, out.IsWall(c.Row, c.Col))
		assert.True(t, out.Equal(g))
	}
}

func TestToggleWall_OutOfBounds(t *testing.T) {
	g := Default()

	_, err := g.ToggleWall(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.ToggleWall(0, 50)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestToggleWall_SharesUntouchedRows(t *testing.T) {
	g := Default()
	a, err := g.ToggleWall(0, 0)
	require.NoError(t, err)
	b, err := a.ToggleWall(19, 49)
	require.NoError(t, err)

	assert.True(t, a.IsWall(0, 0))
	assert.False(t, a.IsWall(19, 49))
	assert.True(t, b.IsWall(0, 0))
	assert.True(t, b.IsWall(19, 49))
	assert.Equal(t, 2, b.WallCount())
}

func TestReset(t *testing.T) {
	g := Default()
	var err error
	for c := 0; c < 10; c++ {
		g, err = g.ToggleWall(2, c)
		require.NoError(t, err)
	}
	require.Equal(t, 10, g.WallCount())

	assert.True(t, g.Reset().Equal(Default()))
}

func TestWalls(t *testing.T) {
	g, err := New(3, 2, Coord{0, 0}, Coord{1, 2})
	require.NoError(t, err)
	g, err = g.ToggleWall(0, 1)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0, 1, 0}, {0, 0, 0}}, g.Walls())
}
