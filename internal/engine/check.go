package engine

// KingInCheck reports whether the king of color is attacked. A board without that king is corrupt.
func KingInCheck(b *Board, color Color) (bool, error) {
	king, err := b.mustFindKing(color)
	if err != nil {
		return false, err
	}
	return Attacked(b, king, color.Opposite()), nil
}

// Attacked reports whether a pawn, knight, bishop, rook or queen of color by attacks sq.
// Enemy king adjacency is excluded; the king movement rule keeps kings apart.
func Attacked(b *Board, sq Coordinate, by Color) bool {
	return pawnAttack(b, sq, by) ||
		jumpAttack(b, sq, by, knightJumps, Knight) ||
		rayAttack(b, sq, by, diagonalDirs, Bishop) ||
		rayAttack(b, sq, by, orthogonalDirs, Rook)
}

func pawnAttack(b *Board, sq Coordinate, by Color) bool {
	rank := sq.Rank - by.forward()
	for _, df := range [2]int{-1, 1} {
		c := Coordinate{File: sq.File + df, Rank: rank}
		if c.valid() && b.piece(c).Is(Pawn, by) {
			return true
		}
	}
	return false
}

func jumpAttack(b *Board, sq Coordinate, by Color, offsets []offset, kind PieceKind) bool {
	found := false
	b.jumps(sq, offsets, func(_ Coordinate, p Piece) bool {
		found = p.Is(kind, by)
		return !found
	})
	return found
}

// rayAttack walks each ray to its first occupant; slider or a queen of color by on it means attack.
func rayAttack(b *Board, sq Coordinate, by Color, dirs []offset, slider PieceKind) bool {
	for _, d := range dirs {
		found := false
		b.walk(sq, d, func(_ Coordinate, p Piece) bool {
			found = p.Color == by && (p.Kind == slider || p.Kind == Queen)
			return true
		})
		if found {
			return true
		}
	}
	return false
}
