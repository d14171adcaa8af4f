package engine

import (
	"fmt"
	"strings"
)

// Coordinate is a zero-indexed file (a=0..h=7) and rank (1=0..8=7).
type Coordinate struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

// At builds a Coordinate from a file and rank index.
func At(file, rank int) Coordinate {
	return Coordinate{File: file, Rank: rank}
}

// ParseCoordinate reads algebraic notation such as "e4"; the file letter is case-insensitive.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	c := Coordinate{File: file, Rank: rank}
	if !c.valid() {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return c, nil
}

// MustCoordinate is ParseCoordinate for literals known to be valid.
func MustCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) String() string {
	if !c.valid() {
		return "-"
	}
	return string(rune('a'+c.File)) + string(rune('1'+c.Rank))
}

// FileLetter is the lowercase file letter of c.
func (c Coordinate) FileLetter() string {
	return string(rune('a' + c.File))
}

func (c Coordinate) valid() bool {
	return c.File >= 0 && c.File < 8 && c.Rank >= 0 && c.Rank < 8
}

func (c Coordinate) add(o offset) Coordinate {
	return Coordinate{File: c.File + o.df, Rank: c.Rank + o.dr}
}

// isLight reports whether c is a light square (a1 is dark).
func (c Coordinate) isLight() bool {
	return (c.File+c.Rank)%2 == 1
}

type offset struct {
	df, dr int
}

var (
	orthogonalDirs = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightJumps    = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingSteps      = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
