package engine

import (
	"reflect"
	"testing"
)

var (
	wK = Piece{Kind: King, Color: White}
	wQ = Piece{Kind: Queen, Color: White}
	wR = Piece{Kind: Rook, Color: White}
	wB = Piece{Kind: Bishop, Color: White}
	wN = Piece{Kind: Knight, Color: White}
	wP = Piece{Kind: Pawn, Color: White}
	bK = Piece{Kind: King, Color: Black}
	bQ = Piece{Kind: Queen, Color: Black}
	bR = Piece{Kind: Rook, Color: Black}
	bB = Piece{Kind: Bishop, Color: Black}
	bN = Piece{Kind: Knight, Color: Black}
	bP = Piece{Kind: Pawn, Color: Black}
)

// setup builds an in-progress position with no castling rights from square/piece pairs.
func setup(t *testing.T, toMove Color, pieces map[string]Piece) *Position {
	t.Helper()
	p := &Position{
		Board:   NewEmptyBoard(),
		State:   InProgress,
		History: make([]Ply, 0),
	}
	if toMove == Black {
		p.Turn = 1
	}
	for sq, pc := range pieces {
		c, err := ParseCoordinate(sq)
		if err != nil {
			t.Fatalf("bad square %q: %v", sq, err)
		}
		p.Board.Put(c, pc)
	}
	return p
}

// play applies each long-algebraic move and fails the test on the first rejection.
func play(t *testing.T, p *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		mv, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if err := p.ApplyMove(mv); err != nil {
			t.Fatalf("move %s: %v", s, err)
		}
	}
}

// expectReject applies s and requires it to be declined for reason without touching p.
func expectReject(t *testing.T, p *Position, s string, reason Reason) {
	t.Helper()
	mv, err := ParseMove(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	before := p.Clone()
	err = p.ApplyMove(mv)
	got, ok := ReasonOf(err)
	if !ok {
		t.Fatalf("move %s: expected rejection %s, got %v", s, reason, err)
	}
	if got != reason {
		t.Fatalf("move %s: expected reason %s, got %s", s, reason, got)
	}
	if !positionsEqual(before, p) {
		t.Fatalf("move %s: rejected move modified the position", s)
	}
}

func positionsEqual(a, b *Position) bool {
	return reflect.DeepEqual(a, b)
}
