package route

// Direction is one of the four axis-aligned travel directions on the canvas.
// North points toward smaller y, South toward larger y.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Horizontal reports whether the direction runs along the x axis.
func (d Direction) Horizontal() bool { return d == East || d == West }

// Delta returns the unit cell step for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	default:
		return "west"
	}
}
