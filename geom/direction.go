package geom

// YAxis selects which way "up" points on the grid.
// It is passed explicitly wherever a direction or angle becomes a delta.
type YAxis uint8

const (
	YDown YAxis = iota // screen convention: Y grows toward the bottom
	YUp                // math convention: Y grows toward the top
)

// Direction is one of the eight compass directions, clockwise from Up.
type Direction int8

const (
	None Direction = iota - 1
	Up
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
	NumDirections = 8
)

// screen-space deltas (YDown) indexed by Direction
var dirDeltas = [NumDirections]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

var dirNames = [NumDirections]string{
	"up", "up-right", "right", "down-right",
	"down", "down-left", "left", "up-left",
}

// Delta returns the unit offset for the direction under the given axis convention.
func (d Direction) Delta(axis YAxis) Point {
	if d < 0 || d >= NumDirections {
		return Point{}
	}
	p := dirDeltas[d]
	if axis == YUp {
		p.Y = -p.Y
	}
	return p
}

// IsCardinal reports whether d is one of Up, Right, Down, Left.
func (d Direction) IsCardinal() bool {
	return d >= 0 && d < NumDirections && d%2 == 0
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return "none"
	}
	return dirNames[d]
}
