package engine

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the rank delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// backRank is the rank the pieces of c start on.
func (c Color) backRank() int {
	if c == White {
		return 0
	}
	return 7
}

// relativeRank maps a zero-indexed rank to the rank as seen from c's side of the board.
func (c Color) relativeRank(rank int) int {
	if c == White {
		return rank
	}
	return 7 - rank
}

func (c Color) MarshalText() ([]byte, error) {
	s := c.String()
	if s == "" {
		return nil, fmt.Errorf("unknown color %d", c)
	}
	return []byte(s), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}
