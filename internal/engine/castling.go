package engine

// CastlingRights are revoked as kings and rooks leave home and are never granted back.
type CastlingRights struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

func (r CastlingRights) Any() bool {
	return r.Kingside || r.Queenside
}

// revokeFor drops the right tied to a rook standing on home, if home is one of color's rook corners.
func (r *CastlingRights) revokeFor(color Color, home Coordinate) {
	if home.Rank != color.backRank() {
		return
	}
	switch home.File {
	case kingsideRookFile:
		r.Kingside = false
	case queensideRookFile:
		r.Queenside = false
	}
}

type CastleRookMove struct {
	From Coordinate `json:"from"`
	To   Coordinate `json:"to"`
}

const (
	kingHomeFile      = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
)

func castleRookMove(kingFrom, kingTo Coordinate) CastleRookMove {
	rank := kingFrom.Rank
	if kingTo.File > kingFrom.File {
		return CastleRookMove{From: At(kingsideRookFile, rank), To: At(kingFrom.File+1, rank)}
	}
	return CastleRookMove{From: At(queensideRookFile, rank), To: At(kingFrom.File-1, rank)}
}
