package engine

import (
	"errors"
	"testing"
)

func TestKingInCheck(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]Piece
		want   bool
	}{
		{name: "open file", pieces: map[string]Piece{"e8": bR}, want: true},
		{name: "file blocked by own pawn", pieces: map[string]Piece{"e8": bR, "e6": wP}, want: false},
		{name: "diagonal", pieces: map[string]Piece{"b7": bB}, want: true},
		{name: "diagonal blocked by enemy piece", pieces: map[string]Piece{"b7": bB, "c6": bP}, want: false},
		{name: "queen on the rank", pieces: map[string]Piece{"a4": bQ}, want: true},
		{name: "queen on the diagonal", pieces: map[string]Piece{"h1": bQ}, want: true},
		{name: "rook on a diagonal", pieces: map[string]Piece{"b7": bR}, want: false},
		{name: "bishop on the file", pieces: map[string]Piece{"e8": bB}, want: false},
		{name: "knight", pieces: map[string]Piece{"f6": bN}, want: true},
		{name: "knight out of reach", pieces: map[string]Piece{"e6": bN}, want: false},
		{name: "pawn in front", pieces: map[string]Piece{"d5": bP}, want: true},
		{name: "pawn straight ahead", pieces: map[string]Piece{"e5": bP}, want: false},
		{name: "pawn behind", pieces: map[string]Piece{"d3": bP}, want: false},
		{name: "own rook", pieces: map[string]Piece{"e8": wR}, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pieces := map[string]Piece{"e4": wK, "h6": bK}
			for sq, pc := range tt.pieces {
				pieces[sq] = pc
			}
			p := setup(t, White, pieces)
			got, err := KingInCheck(&p.Board, White)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKingInCheckBlack(t *testing.T) {
	p := setup(t, Black, map[string]Piece{"a1": wK, "e5": bK, "d4": wP})
	checked, err := KingInCheck(&p.Board, Black)
	if err != nil || !checked {
		t.Fatalf("expected the white pawn on d4 to give check, got %v (err %v)", checked, err)
	}
	p.Board.Put(MustCoordinate("d4"), Piece{})
	p.Board.Put(MustCoordinate("d6"), wP)
	checked, err = KingInCheck(&p.Board, Black)
	if err != nil || checked {
		t.Fatalf("a pawn behind the king does not give check, got %v (err %v)", checked, err)
	}
}

func TestKingInCheckMissingKing(t *testing.T) {
	b := NewEmptyBoard()
	b.Put(MustCoordinate("e1"), wK)
	if _, err := KingInCheck(&b, Black); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestAttackedIgnoresKings(t *testing.T) {
	b := NewEmptyBoard()
	b.Put(MustCoordinate("e4"), wK)
	b.Put(MustCoordinate("e6"), bK)
	if Attacked(&b, MustCoordinate("e5"), Black) {
		t.Fatalf("king adjacency is handled by the king movement rule")
	}
}
