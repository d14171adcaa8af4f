package engine

import "fmt"

// Square is one cell of the board. Light is cached for rendering only.
type Square struct {
	Coord Coordinate `json:"coord"`
	Piece Piece      `json:"piece"`
	Light bool       `json:"light"`
}

// Board is the fixed grid, indexed [file][rank]. Copying a Board by value is the scratch-board
// mechanism used for every simulated move.
type Board [8][8]Square

var backRankKinds = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting layout.
func NewBoard() Board {
	b := NewEmptyBoard()
	for file := 0; file < 8; file++ {
		b[file][0].Piece = Piece{Kind: backRankKinds[file], Color: White}
		b[file][1].Piece = Piece{Kind: Pawn, Color: White}
		b[file][6].Piece = Piece{Kind: Pawn, Color: Black}
		b[file][7].Piece = Piece{Kind: backRankKinds[file], Color: Black}
	}
	return b
}

// NewEmptyBoard returns a board with coordinates and square shades filled in and no pieces.
func NewEmptyBoard() Board {
	var b Board
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			c := Coordinate{File: file, Rank: rank}
			b[file][rank] = Square{Coord: c, Light: c.isLight()}
		}
	}
	return b
}

func (b *Board) Square(c Coordinate) Square {
	return b[c.File][c.Rank]
}

func (b *Board) piece(c Coordinate) Piece {
	return b[c.File][c.Rank].Piece
}

// Put places p on c, replacing whatever was there. An empty Piece clears the square.
func (b *Board) Put(c Coordinate, p Piece) {
	b[c.File][c.Rank].Piece = p
}

// FindKing locates the king of color.
func (b *Board) FindKing(color Color) (Coordinate, bool) {
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			if b[file][rank].Piece.Is(King, color) {
				return Coordinate{File: file, Rank: rank}, true
			}
		}
	}
	return Coordinate{}, false
}

func (b *Board) mustFindKing(color Color) (Coordinate, error) {
	sq, ok := b.FindKing(color)
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: no %s king on the board", ErrInternal, color)
	}
	return sq, nil
}

// walk steps from `from` along d and visits each square until the board edge. The first occupied
// square is visited and ends the ray; visit may stop earlier by returning false.
func (b *Board) walk(from Coordinate, d offset, visit func(Coordinate, Piece) bool) {
	for c := from.add(d); c.valid(); c = c.add(d) {
		p := b.piece(c)
		if !visit(c, p) || !p.IsEmpty() {
			return
		}
	}
}

// jumps visits every on-board square at one of the given offsets from `from`.
func (b *Board) jumps(from Coordinate, offsets []offset, visit func(Coordinate, Piece) bool) {
	for _, o := range offsets {
		c := from.add(o)
		if !c.valid() {
			continue
		}
		if !visit(c, b.piece(c)) {
			return
		}
	}
}

// boardChange records what play did besides moving the piece itself.
type boardChange struct {
	moved      Piece
	captured   Piece
	capturedAt Coordinate
	enPassant  bool
	promotion  PieceKind
	castle     *CastleRookMove
}

// play relocates the piece on from to to, handling en passant removal, castling rook relocation
// and promotion. It assumes the move already passed the movement predicate.
func (b *Board) play(from, to Coordinate, promotion PieceKind) (boardChange, error) {
	moved := b.piece(from)
	ch := boardChange{moved: moved, captured: b.piece(to), capturedAt: to}

	switch moved.Kind {
	case Pawn:
		if from.File != to.File && ch.captured.IsEmpty() {
			// the pawn taken en passant sits beside the destination
			ch.capturedAt = Coordinate{File: to.File, Rank: from.Rank}
			ch.captured = b.piece(ch.capturedAt)
			ch.enPassant = true
			b.Put(ch.capturedAt, Piece{})
		}
		if to.Rank == moved.Color.Opposite().backRank() {
			if promotion == NoPiece {
				promotion = Queen
			}
			ch.promotion = promotion
		}
	case King:
		if abs(to.File-from.File) == 2 {
			rm := castleRookMove(from, to)
			rook := b.piece(rm.From)
			if !rook.Is(Rook, moved.Color) {
				return ch, fmt.Errorf("%w: no %s rook on %s to castle with", ErrInternal, moved.Color, rm.From)
			}
			b.Put(rm.From, Piece{})
			b.Put(rm.To, rook)
			ch.castle = &rm
		}
	}

	placed := moved
	if ch.promotion != NoPiece {
		placed.Kind = ch.promotion
	}
	b.Put(from, Piece{})
	b.Put(to, placed)
	return ch, nil
}
