package edge

import (
	"strings"

	"github.com/pkg/errors"
)

// Restriction is the per-channel sense value carried by an edge. The order
// matters: vertex classification keeps the maximum restriction seen.
type Restriction int

const (
	RestrictionNone    Restriction = 0
	RestrictionLimited Restriction = 1
	RestrictionNormal  Restriction = 2
)

func (r Restriction) String() string {
	switch r {
	case RestrictionNone:
		return "none"
	case RestrictionLimited:
		return "limited"
	case RestrictionNormal:
		return "normal"
	}

	return "unknown"
}

func ParseRestriction(s string) (Restriction, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return RestrictionNone, nil
	case "limited":
		return RestrictionLimited, nil
	case "normal":
		return RestrictionNormal, nil
	}

	return RestrictionNone, errors.Errorf("unrecognized restriction %q", s)
}

// Channel selects which perception sense a sweep honors.
type Channel int

const (
	ChannelLight Channel = iota
	ChannelSight
	ChannelSound
	ChannelMove

	// ChannelUniversal matches edges restricting any channel.
	ChannelUniversal
)

func (c Channel) String() string {
	switch c {
	case ChannelLight:
		return "light"
	case ChannelSight:
		return "sight"
	case ChannelSound:
		return "sound"
	case ChannelMove:
		return "move"
	case ChannelUniversal:
		return "universal"
	}

	return "unknown"
}

func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "light":
		return ChannelLight, nil
	case "sight":
		return ChannelSight, nil
	case "sound":
		return ChannelSound, nil
	case "move", "movement":
		return ChannelMove, nil
	case "universal":
		return ChannelUniversal, nil
	}

	return ChannelSight, errors.Errorf("unrecognized channel %q", s)
}

// Direction constrains which side of an edge blocks; DirectionBoth is the
// usual two-sided wall.
type Direction int

const (
	DirectionBoth Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionBoth:
		return "both"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}

	return "unknown"
}

// Type tags record edge provenance only; the sweep treats all types alike
// except darkness, which is opt-in.
type Type int

const (
	TypeWall Type = iota
	TypeBoundary
	TypeInnerBoundary
	TypeDarkness
)

func (t Type) String() string {
	switch t {
	case TypeWall:
		return "wall"
	case TypeBoundary:
		return "boundary"
	case TypeInnerBoundary:
		return "innerBoundary"
	case TypeDarkness:
		return "darkness"
	}

	return "unknown"
}
