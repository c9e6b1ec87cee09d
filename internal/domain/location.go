package domain

// LocationID identifies a node of the world map.
type LocationID string

// Direction is a compass exit out of a location.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

// Opposite returns the reverse direction, used to check that exits are symmetric.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d.Opposite() != ""
}

// String returns the long direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "nowhere"
	}
}

// Location is a place the witch can visit. Items holds the remaining stock
// of each collectible ingredient.
type Location struct {
	ID     LocationID
	Name   string
	Exits  map[Direction]LocationID
	Items  map[ItemID]int
	Flavor []string
}
