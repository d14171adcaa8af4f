package engine

// AppendCandidates appends to dst the squares the piece on from could reach by its movement pattern.
// Sliders stop at, and include, the first occupied square on each ray. Turn order, friendly
// occupation and check are not considered; every candidate still goes through the legality gates.
func AppendCandidates(dst []Coordinate, b *Board, from Coordinate) []Coordinate {
	pc := b.piece(from)
	collect := func(c Coordinate, _ Piece) bool {
		dst = append(dst, c)
		return true
	}
	switch pc.Kind {
	case Pawn:
		fwd := pc.Color.forward()
		steps := []offset{{dr: fwd}, {df: -1, dr: fwd}, {df: 1, dr: fwd}}
		if pc.Color.relativeRank(from.Rank) == 1 {
			steps = append(steps, offset{dr: 2 * fwd})
		}
		b.jumps(from, steps, collect)
	case Knight:
		b.jumps(from, knightJumps, collect)
	case Bishop:
		for _, d := range diagonalDirs {
			b.walk(from, d, collect)
		}
	case Rook:
		for _, d := range orthogonalDirs {
			b.walk(from, d, collect)
		}
	case Queen:
		for _, d := range diagonalDirs {
			b.walk(from, d, collect)
		}
		for _, d := range orthogonalDirs {
			b.walk(from, d, collect)
		}
	case King:
		b.jumps(from, kingSteps, collect)
		if from == At(kingHomeFile, pc.Color.backRank()) {
			dst = append(dst, At(from.File+2, from.Rank), At(from.File-2, from.Rank))
		}
	}
	return dst
}
