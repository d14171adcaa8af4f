package engine

import "fmt"

// ApplyMove validates mv for the side to move and, if it is legal, plays it and recomputes the game
// status. A rejected move returns a *RejectedError and leaves p exactly as it was; a corrupted
// position returns an error wrapping ErrInternal, also without modifying p.
func (p *Position) ApplyMove(mv Move) error {
	if !p.playable() {
		return reject(ReasonGameOver)
	}
	if !mv.From.valid() || !mv.To.valid() {
		return reject(ReasonIllegalMovement)
	}
	mover := p.ToMove()
	pc := p.Board.piece(mv.From)
	if pc.IsEmpty() {
		return reject(ReasonEmptySquare)
	}
	if pc.Color != mover {
		return reject(ReasonNotYourTurn)
	}
	if err := p.legal(mover, mv); err != nil {
		return err
	}

	next := *p
	ch, err := next.Board.play(mv.From, mv.To, mv.Promotion)
	if err != nil {
		return err
	}
	notation := p.notation(mv, ch)

	own := next.Player(mover)
	switch ch.moved.Kind {
	case King:
		own.Castling = CastlingRights{}
	case Rook:
		own.Castling.revokeFor(mover, mv.From)
	}
	if ch.captured.Kind == Rook {
		next.Player(mover.Opposite()).Castling.revokeFor(mover.Opposite(), ch.capturedAt)
	}

	next.LatestMove = &LatestMove{
		From:  p.Board.Square(mv.From),
		To:    next.Board.Square(mv.To),
		Color: mover,
	}
	next.Turn++
	if ch.moved.Kind == Pawn || !ch.captured.IsEmpty() {
		next.FiftyMove = 0
	} else {
		next.FiftyMove++
	}

	if err := next.refreshStatus(); err != nil {
		return err
	}
	switch {
	case next.State == victoryFor(mover):
		notation += "#"
	case next.Player(mover.Opposite()).InCheck:
		notation += "+"
	}

	n := len(p.History)
	next.History = append(p.History[:n:n], Ply{
		Piece:     ch.moved,
		From:      mv.From,
		To:        mv.To,
		Captured:  ch.captured,
		Promotion: ch.promotion,
		Castle:    ch.castle,
		EnPassant: ch.enPassant,
		Notation:  notation,
	})
	*p = next
	return nil
}

// playable is the first gate: the game is running, the fifty-move clock has not run out and there is
// still mating material on the board.
func (p *Position) playable() bool {
	return p.State == InProgress &&
		p.FiftyMove < FiftyMoveLimit &&
		!HasInsufficientMaterial(&p.Board)
}

// legal runs the capture, movement and check gates for a move by mover. It does not look at the turn.
func (p *Position) legal(mover Color, mv Move) error {
	target := p.Board.piece(mv.To)
	if target.Kind == King {
		return reject(ReasonKingCapture)
	}
	if !target.IsEmpty() && target.Color == mover {
		return reject(ReasonFriendlyCapture)
	}
	if !p.CanReach(mv.From, mv.To) {
		return reject(ReasonIllegalMovement)
	}
	if mv.Promotion != NoPiece && !mv.Promotion.isPromotionChoice() {
		return reject(ReasonInvalidPromotion)
	}

	scratch := p.Board
	if _, err := scratch.play(mv.From, mv.To, mv.Promotion); err != nil {
		return err
	}
	checked, err := KingInCheck(&scratch, mover)
	if err != nil {
		return err
	}
	if !checked {
		return nil
	}
	already, err := KingInCheck(&p.Board, mover)
	if err != nil {
		return err
	}
	if already {
		return reject(ReasonUnresolvedCheck)
	}
	return reject(ReasonSelfCheck)
}

// refreshStatus recomputes both check flags and the game state after a move.
// Mate and stalemate take precedence over the material and fifty-move draws.
func (p *Position) refreshStatus() error {
	for _, c := range [2]Color{White, Black} {
		checked, err := KingInCheck(&p.Board, c)
		if err != nil {
			return err
		}
		pl := p.Player(c)
		pl.InCheck = checked
		pl.Victory = false
	}

	toMove := p.ToMove()
	canMove, err := p.HasLegalMove(toMove)
	if err != nil {
		return err
	}
	switch {
	case !canMove && p.Player(toMove).InCheck:
		p.State = victoryFor(toMove.Opposite())
		p.Player(toMove.Opposite()).Victory = true
	case !canMove:
		p.State = Stalemate
	case HasInsufficientMaterial(&p.Board):
		p.State = InsufficientMaterial
	case p.FiftyMove >= FiftyMoveLimit:
		p.State = Stalemate
	default:
		p.State = InProgress
	}
	return nil
}

// HasLegalMove reports whether color has at least one move that passes every legality gate.
func (p *Position) HasLegalMove(color Color) (bool, error) {
	found := false
	err := p.eachLegal(color, func(Move) bool {
		found = true
		return false
	})
	return found, err
}

// LegalMoves lists every legal move for the side to move, with one entry per promotion choice.
// A finished game has none.
func (p *Position) LegalMoves() ([]Move, error) {
	moves := make([]Move, 0, 48)
	if !p.playable() {
		return moves, nil
	}
	err := p.eachLegal(p.ToMove(), func(mv Move) bool {
		if p.Board.piece(mv.From).Kind == Pawn && mv.To.Rank == p.ToMove().Opposite().backRank() {
			for _, k := range PromotionChoices {
				moves = append(moves, Move{From: mv.From, To: mv.To, Promotion: k})
			}
			return true
		}
		moves = append(moves, mv)
		return true
	})
	if err != nil {
		return nil, err
	}
	return moves, nil
}

// eachLegal feeds every legal (from, to) pair of color to yield until it returns false.
func (p *Position) eachLegal(color Color, yield func(Move) bool) error {
	var buf [32]Coordinate
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			from := At(file, rank)
			pc := p.Board.piece(from)
			if pc.IsEmpty() || pc.Color != color {
				continue
			}
			for _, to := range AppendCandidates(buf[:0], &p.Board, from) {
				mv := Move{From: from, To: to}
				err := p.legal(color, mv)
				if _, rejected := ReasonOf(err); rejected {
					continue
				}
				if err != nil {
					return err
				}
				if !yield(mv) {
					return nil
				}
			}
		}
	}
	return nil
}

// Replay plays moves from the starting position. On the first failing move it returns the position
// reached so far and the error, annotated with the move number.
func Replay(moves []Move) (*Position, error) {
	p := NewGame()
	for i, mv := range moves {
		if err := p.ApplyMove(mv); err != nil {
			return p, fmt.Errorf("move %d (%s): %w", i+1, mv, err)
		}
	}
	return p, nil
}
