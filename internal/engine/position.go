package engine

// FiftyMoveLimit is the half-move count, without a capture or pawn move, at which the game is drawn.
const FiftyMoveLimit = 50

type Player struct {
	InCheck  bool           `json:"inCheck"`
	Victory  bool           `json:"victory"`
	Castling CastlingRights `json:"castling"`
}

// LatestMove is the previous ply, kept to validate en passant.
type LatestMove struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Color Color  `json:"color"`
}

// Position is the whole game: board, clocks, players, status and history.
// It is not safe for concurrent use; callers serialize access per game.
type Position struct {
	Board      Board       `json:"board"`
	Turn       int         `json:"turn"`
	LatestMove *LatestMove `json:"latestMove"`
	White      Player      `json:"white"`
	Black      Player      `json:"black"`
	State      GameState   `json:"state"`
	FiftyMove  int         `json:"fiftyMoveCounter"`
	History    []Ply       `json:"history"`
}

// NewGame returns the standard starting position with White to move.
func NewGame() *Position {
	rights := CastlingRights{Kingside: true, Queenside: true}
	return &Position{
		Board:   NewBoard(),
		White:   Player{Castling: rights},
		Black:   Player{Castling: rights},
		State:   InProgress,
		History: make([]Ply, 0),
	}
}

// ToMove is White on even turns and Black on odd ones.
func (p *Position) ToMove() Color {
	if p.Turn%2 == 0 {
		return White
	}
	return Black
}

func (p *Position) Square(c Coordinate) Square {
	return p.Board.Square(c)
}

func (p *Position) Player(color Color) *Player {
	if color == White {
		return &p.White
	}
	return &p.Black
}

// Clone returns a deep copy whose history does not share storage with p.
func (p *Position) Clone() *Position {
	c := *p
	if p.LatestMove != nil {
		lm := *p.LatestMove
		c.LatestMove = &lm
	}
	c.History = make([]Ply, len(p.History))
	copy(c.History, p.History)
	return &c
}
