package engine

import "fmt"

type GameState uint8

const (
	// InProgress is the only state that accepts moves.
	InProgress GameState = iota

	// WhiteVictory is when Black is checkmated.
	WhiteVictory

	// BlackVictory is when White is checkmated.
	BlackVictory

	// Stalemate is when the side to move has no legal move and is not in check, or when the
	// fifty-move rule ran out.
	Stalemate

	// InsufficientMaterial is when neither side can force checkmate with what is left.
	InsufficientMaterial
)

func (s GameState) IsOver() bool {
	return s != InProgress
}

func (s GameState) IsDraw() bool {
	return s == Stalemate || s == InsufficientMaterial
}

func (s GameState) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case WhiteVictory:
		return "white_victory"
	case BlackVictory:
		return "black_victory"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient_material"
	default:
		return ""
	}
}

func (s GameState) MarshalText() ([]byte, error) {
	str := s.String()
	if str == "" {
		return nil, fmt.Errorf("unknown game state %d", s)
	}
	return []byte(str), nil
}

func (s *GameState) UnmarshalText(text []byte) error {
	for st := InProgress; st <= InsufficientMaterial; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", text)
}

func victoryFor(c Color) GameState {
	if c == White {
		return WhiteVictory
	}
	return BlackVictory
}

type material struct {
	knights      int
	lightBishops int
	darkBishops  int
}

func (m material) minors() int {
	return m.knights + m.lightBishops + m.darkBishops
}

// HasInsufficientMaterial reports whether neither side can force mate. Any pawn, rook or queen means
// there is enough. Otherwise the position is dead when every bishop stands on one square shade and
// there are no knights, when each side has at most one minor piece, or when a lone side has two
// knights against a bare king.
func HasInsufficientMaterial(b *Board) bool {
	var side [2]material
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			sq := b[file][rank]
			m := &side[sq.Piece.Color]
			switch sq.Piece.Kind {
			case Pawn, Rook, Queen:
				return false
			case Knight:
				m.knights++
			case Bishop:
				if At(file, rank).isLight() {
					m.lightBishops++
				} else {
					m.darkBishops++
				}
			}
		}
	}

	w, bl := side[White], side[Black]
	knights := w.knights + bl.knights
	light := w.lightBishops + bl.lightBishops
	dark := w.darkBishops + bl.darkBishops
	switch {
	case knights == 0 && (light == 0 || dark == 0):
		return true
	case w.minors() <= 1 && bl.minors() <= 1:
		return true
	case w.minors() == 0 && bl.minors() == 2 && bl.knights == 2:
		return true
	case bl.minors() == 0 && w.minors() == 2 && w.knights == 2:
		return true
	}
	return false
}
