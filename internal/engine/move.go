package engine

import (
	"fmt"
	"strings"
)

// Move is a request to move the piece on From to To. Promotion is only read when a pawn reaches the
// last rank; NoPiece means Queen there.
type Move struct {
	From      Coordinate `json:"from"`
	To        Coordinate `json:"to"`
	Promotion PieceKind  `json:"promotion,omitempty"`
}

// String renders the move in long algebraic form, e.g. "e2e4" or "e7e8n".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPiece {
		s += strings.ToLower(m.Promotion.Letter())
	}
	return s
}

// ParseMove reads long algebraic notation. Separators are tolerated: "e2e4", "e2-e4", "e7e8q", "e7-e8=Q".
func ParseMove(s string) (Move, error) {
	s = strings.NewReplacer("-", "", "=", "", "x", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: move %q", ErrInvalidCoordinate, s)
	}
	from, err := ParseCoordinate(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseCoordinate(s[2:4])
	if err != nil {
		return Move{}, err
	}
	mv := Move{From: from, To: to}
	if len(s) == 5 {
		if mv.Promotion, err = ParsePromotion(s[4:]); err != nil {
			return Move{}, err
		}
	}
	return mv, nil
}

// ParsePromotion reads a promotion choice by name or letter, case-insensitively. Empty means Queen.
func ParsePromotion(s string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "q", "queen":
		return Queen, nil
	case "r", "rook":
		return Rook, nil
	case "b", "bishop":
		return Bishop, nil
	case "n", "knight":
		return Knight, nil
	default:
		return NoPiece, fmt.Errorf("%w: %q", ErrInvalidPromotion, s)
	}
}

// Ply is one executed move as recorded in the history.
type Ply struct {
	Piece     Piece           `json:"piece"`
	From      Coordinate      `json:"from"`
	To        Coordinate      `json:"to"`
	Captured  Piece           `json:"captured"`
	Promotion PieceKind       `json:"promotion"`
	Castle    *CastleRookMove `json:"castle"`
	EnPassant bool            `json:"enPassant"`
	Notation  string          `json:"notation"`
}

// notation writes the SAN body of a move about to be played from p; check marks are added later.
func (p *Position) notation(mv Move, ch boardChange) string {
	if ch.castle != nil {
		if mv.To.File > mv.From.File {
			return "O-O"
		}
		return "O-O-O"
	}
	var sb strings.Builder
	capture := !ch.captured.IsEmpty()
	sb.WriteString(ch.moved.Kind.Letter())
	if ch.moved.Kind == Pawn {
		if capture {
			sb.WriteString(mv.From.FileLetter())
		}
	} else {
		sb.WriteString(p.disambiguation(mv, ch.moved))
	}
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(mv.To.String())
	if ch.promotion != NoPiece {
		sb.WriteString("=" + ch.promotion.Letter())
	}
	return sb.String()
}

// disambiguation names the origin file, rank or square when another piece of the same kind and
// color could also legally move to the destination.
func (p *Position) disambiguation(mv Move, moved Piece) string {
	var clash, sameFile, sameRank bool
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			other := At(file, rank)
			if other == mv.From || !p.Board.piece(other).Is(moved.Kind, moved.Color) {
				continue
			}
			if p.legal(moved.Color, Move{From: other, To: mv.To}) != nil {
				continue
			}
			clash = true
			sameFile = sameFile || other.File == mv.From.File
			sameRank = sameRank || other.Rank == mv.From.Rank
		}
	}
	switch {
	case !clash:
		return ""
	case !sameFile:
		return mv.From.FileLetter()
	case !sameRank:
		return string(rune('1' + mv.From.Rank))
	default:
		return mv.From.String()
	}
}
