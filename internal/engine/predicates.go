package engine

// CanReach reports whether the piece on from may travel to to under its own movement rule. It ignores
// whose turn it is, what stands on the destination and whether the mover's king is left in check;
// ApplyMove applies those gates.
func (p *Position) CanReach(from, to Coordinate) bool {
	if !from.valid() || !to.valid() || from == to {
		return false
	}
	b := &p.Board
	pc := b.piece(from)
	switch pc.Kind {
	case Pawn:
		return p.pawnCanReach(pc.Color, from, to)
	case Knight:
		return b.reachesByOffset(from, to, knightJumps)
	case Bishop:
		return b.rayClear(from, to, diagonalDirs)
	case Rook:
		return b.rayClear(from, to, orthogonalDirs)
	case Queen:
		return b.rayClear(from, to, diagonalDirs) || b.rayClear(from, to, orthogonalDirs)
	case King:
		return p.kingCanReach(pc.Color, from, to)
	default:
		return false
	}
}

// reachesByOffset reports whether to is exactly one of the offsets away from from.
func (b *Board) reachesByOffset(from, to Coordinate, offsets []offset) bool {
	hit := false
	b.jumps(from, offsets, func(c Coordinate, _ Piece) bool {
		hit = c == to
		return !hit
	})
	return hit
}

// rayClear reports whether to lies on one of the rays dirs from from with every square in between empty.
func (b *Board) rayClear(from, to Coordinate, dirs []offset) bool {
	df, dr := to.File-from.File, to.Rank-from.Rank
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return false
	}
	d := offset{df: sign(df), dr: sign(dr)}
	aligned := false
	for _, dir := range dirs {
		if dir == d {
			aligned = true
			break
		}
	}
	if !aligned {
		return false
	}
	reached := false
	b.walk(from, d, func(c Coordinate, _ Piece) bool {
		reached = c == to
		return !reached
	})
	return reached
}

func (p *Position) pawnCanReach(color Color, from, to Coordinate) bool {
	b := &p.Board
	fwd := color.forward()
	df, dr := to.File-from.File, to.Rank-from.Rank
	switch {
	case df == 0 && dr == fwd:
		return b.piece(to).IsEmpty()
	case df == 0 && dr == 2*fwd:
		return color.relativeRank(from.Rank) == 1 &&
			b.piece(from.add(offset{dr: fwd})).IsEmpty() &&
			b.piece(to).IsEmpty()
	case abs(df) == 1 && dr == fwd:
		target := b.piece(to)
		if !target.IsEmpty() {
			return target.Color != color
		}
		return p.enPassantAllowed(color, from, to)
	default:
		return false
	}
}

// enPassantAllowed reports whether a pawn of color on from may capture en passant onto the empty to.
// The previous ply must be an enemy pawn's double advance that landed beside from on to's file.
func (p *Position) enPassantAllowed(color Color, from, to Coordinate) bool {
	if color.relativeRank(from.Rank) != 4 || color.relativeRank(to.Rank) != 5 {
		return false
	}
	lm := p.LatestMove
	if lm == nil || lm.Color == color || lm.From.Piece.Kind != Pawn {
		return false
	}
	if abs(lm.To.Coord.Rank-lm.From.Coord.Rank) != 2 {
		return false
	}
	victim := At(to.File, from.Rank)
	return lm.To.Coord == victim && p.Board.piece(victim).Is(Pawn, color.Opposite())
}

func (p *Position) kingCanReach(color Color, from, to Coordinate) bool {
	if p.besideEnemyKing(color, to) {
		return false
	}
	if p.Board.reachesByOffset(from, to, kingSteps) {
		return true
	}
	return p.canCastle(color, from, to)
}

func (p *Position) besideEnemyKing(color Color, sq Coordinate) bool {
	near := false
	p.Board.jumps(sq, kingSteps, func(_ Coordinate, pc Piece) bool {
		near = pc.Is(King, color.Opposite())
		return !near
	})
	return near
}

func (p *Position) canCastle(color Color, from, to Coordinate) bool {
	home := At(kingHomeFile, color.backRank())
	if from != home || to.Rank != home.Rank || abs(to.File-from.File) != 2 {
		return false
	}
	rights := p.Player(color).Castling
	kingside := to.File > from.File
	if (kingside && !rights.Kingside) || (!kingside && !rights.Queenside) {
		return false
	}

	rook := castleRookMove(from, to).From
	step := sign(rook.File - from.File)
	for f := from.File + step; f != rook.File; f += step {
		if !p.Board.piece(At(f, from.Rank)).IsEmpty() {
			return false
		}
	}

	enemy := color.Opposite()
	if Attacked(&p.Board, from, enemy) {
		return false
	}
	// the king may not pass through or land on an attacked square
	for _, f := range [2]int{from.File + step, to.File} {
		sq := At(f, from.Rank)
		scratch := p.Board
		scratch.Put(from, Piece{})
		scratch.Put(sq, Piece{Kind: King, Color: color})
		if Attacked(&scratch, sq, enemy) {
			return false
		}
	}
	return true
}
