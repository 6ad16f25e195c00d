// Package grid models the fixed-size pathfinding board.
//
// A [Grid] is a value: [Grid.ToggleWall] returns a new snapshot and leaves
// the receiver intact, so earlier snapshots stay valid for comparison or
// replay. Exactly one start and one finish node exist, fixed at construction,
// and neither can ever become a wall.
package grid
