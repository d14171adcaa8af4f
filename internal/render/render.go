// Package render draws positions for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

// Symbol is the letter of a piece, uppercase for White, lowercase for Black and "." for an empty square.
func Symbol(p engine.Piece) string {
	if p.IsEmpty() {
		return "."
	}
	letter := p.Kind.Letter()
	if p.Kind == engine.Pawn {
		letter = "P"
	}
	if p.Color == engine.Black {
		return strings.ToLower(letter)
	}
	return letter
}

// Board writes the board with rank 8 on top. Plain output has no escape codes.
func Board(w io.Writer, b *engine.Board, plain bool) error {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := b.Square(engine.At(file, rank))
			sb.WriteString(cell(sq, plain))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for file := 0; file < 8; file++ {
		if plain {
			sb.WriteString(string(rune('a'+file)) + " ")
		} else {
			sb.WriteString(" " + string(rune('a'+file)) + " ")
		}
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func cell(sq engine.Square, plain bool) string {
	sym := Symbol(sq.Piece)
	if plain {
		return sym + " "
	}
	if sq.Piece.IsEmpty() {
		sym = " "
	}
	attrs := []color.Attribute{color.BgGreen, color.FgHiWhite, color.Bold}
	if sq.Light {
		attrs[0] = color.BgHiYellow
	}
	if sq.Piece.Color == engine.Black {
		attrs[1] = color.FgBlack
	}
	c := color.New(attrs...)
	// forced on: the caller chose colored output
	c.EnableColor()
	return c.Sprint(" " + sym + " ")
}

// Status is a one-line summary of whose move it is and how the game stands.
func Status(p *engine.Position) string {
	switch p.State {
	case engine.WhiteVictory:
		return "checkmate, white wins"
	case engine.BlackVictory:
		return "checkmate, black wins"
	case engine.Stalemate:
		// a real stalemate can also land on the fifty-move limit
		if p.FiftyMove >= engine.FiftyMoveLimit {
			if canMove, err := p.HasLegalMove(p.ToMove()); err == nil && canMove {
				return "draw by the fifty-move rule"
			}
		}
		return "stalemate"
	case engine.InsufficientMaterial:
		return "draw by insufficient material"
	}
	s := fmt.Sprintf("move %d, %s to play", p.Turn/2+1, p.ToMove())
	if p.Player(p.ToMove()).InCheck {
		s += ", in check"
	}
	return s
}

// Moves writes the history as numbered move pairs, e.g. "1. e4 e5 2. Nf3".
func Moves(w io.Writer, history []engine.Ply) error {
	var sb strings.Builder
	for i, ply := range history {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteString(" " + ply.Notation)
	}
	if sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
