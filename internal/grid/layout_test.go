package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	src := `; small maze
S.#.
..#F
....
`
	g, err := ParseLayout(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, Coord{0, 0}, g.Start())
	assert.Equal(t, Coord{1, 3}, g.Finish())
	assert.Equal(t, 2, g.WallCount())
	assert.True(t, g.IsWall(0, 2))
	assert.True(t, g.IsWall(1, 2))
}

func TestParseLayout_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"ragged":       "S..\n..F.\n",
		"no finish":    "S...\n....\n",
		"two starts":   "S..S\n...F\n",
		"unknown cell": "S.x.\n...F\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(src))
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestFormatLayout_RoundTrip(t *testing.T) {
	g := Default()
	g, _ = g.ToggleWall(0, 0)
	g, _ = g.ToggleWall(5, 7)

	back, err := ParseLayout(strings.NewReader(FormatLayout(g)))
	require.NoError(t, err)
	assert.True(t, back.Equal(g))
}
