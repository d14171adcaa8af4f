package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGame(t *testing.T) {
	p := NewGame()
	if p.ToMove() != White {
		t.Fatalf("expected white to move, got %s", p.ToMove())
	}
	if p.State != InProgress {
		t.Fatalf("expected in_progress, got %s", p.State)
	}
	count := 0
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			if !p.Board[file][rank].Piece.IsEmpty() {
				count++
			}
		}
	}
	if count != 32 {
		t.Fatalf("expected 32 pieces, got %d", count)
	}
	if got := p.Square(MustCoordinate("e1")).Piece; got != wK {
		t.Errorf("e1: expected white king, got %s", got)
	}
	if got := p.Square(MustCoordinate("d8")).Piece; got != bQ {
		t.Errorf("d8: expected black queen, got %s", got)
	}
	if !p.White.Castling.Kingside || !p.White.Castling.Queenside || !p.Black.Castling.Any() {
		t.Errorf("expected every castling right at the start")
	}
	if p.Square(MustCoordinate("a1")).Light || !p.Square(MustCoordinate("h1")).Light {
		t.Errorf("expected a1 dark and h1 light")
	}
}

func TestFoolsMate(t *testing.T) {
	p := NewGame()
	play(t, p, "f2f3", "e7e5", "g2g4", "d8h4")

	if !p.White.InCheck {
		t.Fatalf("expected white in check")
	}
	if !p.Black.Victory || p.White.Victory {
		t.Fatalf("expected black victory only, got white=%v black=%v", p.White.Victory, p.Black.Victory)
	}
	if p.State != BlackVictory {
		t.Fatalf("expected black_victory, got %s", p.State)
	}
	if got := p.History[len(p.History)-1].Notation; got != "Qh4#" {
		t.Fatalf("expected Qh4#, got %q", got)
	}
	if ok, err := p.HasLegalMove(White); err != nil || ok {
		t.Fatalf("expected no legal reply, got %v (err %v)", ok, err)
	}
	expectReject(t, p, "e1f2", ReasonGameOver)
}

func TestCheckmateRejectsEveryReply(t *testing.T) {
	p := setup(t, White, map[string]Piece{
		"a1": wR, "g1": wK,
		"g8": bK, "f7": bP, "g7": bP, "h7": bP,
	})
	play(t, p, "a1a8")
	if p.State != WhiteVictory || !p.White.Victory || !p.Black.InCheck {
		t.Fatalf("expected back-rank mate, got state %s", p.State)
	}
	if got := p.History[0].Notation; got != "Ra8#" {
		t.Fatalf("expected Ra8#, got %q", got)
	}
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			mv := Move{From: At(from%8, from/8), To: At(to%8, to/8)}
			if err := p.ApplyMove(mv); !errors.Is(err, ErrMoveRejected) {
				t.Fatalf("move %s after mate: expected rejection, got %v", mv, err)
			}
		}
	}
}

func TestStalemate(t *testing.T) {
	p := setup(t, White, map[string]Piece{"b6": wK, "d7": wQ, "a8": bK})
	play(t, p, "d7c7")
	if p.State != Stalemate {
		t.Fatalf("expected stalemate, got %s", p.State)
	}
	if p.Black.InCheck || p.White.Victory || p.Black.Victory {
		t.Fatalf("stalemate must not be check or victory")
	}
	if got := p.History[0].Notation; got != "Qc7" {
		t.Fatalf("expected Qc7, got %q", got)
	}
}

func TestTurnAlternation(t *testing.T) {
	p := NewGame()
	expectReject(t, p, "e7e5", ReasonNotYourTurn)
	play(t, p, "e2e4")
	if p.ToMove() != Black {
		t.Fatalf("expected black to move")
	}
	expectReject(t, p, "d2d4", ReasonNotYourTurn)
	play(t, p, "e7e5")
	if p.ToMove() != White || p.Turn != 2 {
		t.Fatalf("expected white to move on turn 2, got %s on %d", p.ToMove(), p.Turn)
	}
	if p.LatestMove == nil || p.LatestMove.Color != Black || p.LatestMove.To.Coord != MustCoordinate("e5") {
		t.Fatalf("unexpected latest move %+v", p.LatestMove)
	}
}

func TestRejectedMovesFromStart(t *testing.T) {
	tests := []struct {
		name   string
		move   string
		reason Reason
	}{
		{name: "empty square", move: "e4e5", reason: ReasonEmptySquare},
		{name: "friendly capture", move: "a1a2", reason: ReasonFriendlyCapture},
		{name: "knight onto own pawn", move: "b1d2", reason: ReasonFriendlyCapture},
		{name: "rook through pawn", move: "a1a3", reason: ReasonIllegalMovement},
		{name: "bishop through pawn", move: "f1c4", reason: ReasonIllegalMovement},
		{name: "knight off pattern", move: "b1b3", reason: ReasonIllegalMovement},
		{name: "pawn three squares", move: "e2e5", reason: ReasonIllegalMovement},
		{name: "pawn diagonal onto empty", move: "e2d3", reason: ReasonIllegalMovement},
		{name: "king onto own piece", move: "e1f1", reason: ReasonFriendlyCapture},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expectReject(t, NewGame(), tt.move, tt.reason)
		})
	}
}

func TestPawnMovement(t *testing.T) {
	p := NewGame()
	play(t, p, "e2e4", "e7e5")
	expectReject(t, p, "e4e3", ReasonIllegalMovement)
	expectReject(t, p, "e4e5", ReasonIllegalMovement)

	blocked := setup(t, White, map[string]Piece{"e1": wK, "e2": wP, "e3": bN, "d3": bP, "e8": bK})
	expectReject(t, blocked, "e2e4", ReasonIllegalMovement)
	expectReject(t, blocked, "e2e3", ReasonIllegalMovement)
	play(t, blocked, "e2d3")
	if got := blocked.Square(MustCoordinate("d3")).Piece; got != wP {
		t.Fatalf("expected pawn on d3, got %s", got)
	}
}

func TestEnPassant(t *testing.T) {
	t.Run("white captures right after the double step", func(t *testing.T) {
		p := NewGame()
		play(t, p, "e2e4", "a7a6", "e4e5", "d7d5", "e5d6")
		if !p.Square(MustCoordinate("d5")).Piece.IsEmpty() {
			t.Fatalf("expected the captured pawn removed from d5")
		}
		last := p.History[len(p.History)-1]
		if !last.EnPassant || last.Captured != bP || last.Notation != "exd6" {
			t.Fatalf("unexpected ply %+v", last)
		}
		if p.FiftyMove != 0 {
			t.Fatalf("expected fifty-move counter reset, got %d", p.FiftyMove)
		}
	})

	t.Run("window closes after one ply", func(t *testing.T) {
		p := NewGame()
		play(t, p, "e2e4", "a7a6", "e4e5", "d7d5", "g1f3", "a6a5")
		expectReject(t, p, "e5d6", ReasonIllegalMovement)
	})

	t.Run("single step does not open the window", func(t *testing.T) {
		p := NewGame()
		play(t, p, "e2e4", "d7d6", "e4e5", "d6d5")
		expectReject(t, p, "e5d6", ReasonIllegalMovement)
	})

	t.Run("black captures", func(t *testing.T) {
		p := NewGame()
		play(t, p, "a2a3", "d7d5", "a3a4", "d5d4", "e2e4", "d4e3")
		if !p.Square(MustCoordinate("e4")).Piece.IsEmpty() {
			t.Fatalf("expected the captured pawn removed from e4")
		}
		if got := p.Square(MustCoordinate("e3")).Piece; got != bP {
			t.Fatalf("expected black pawn on e3, got %s", got)
		}
	})

	t.Run("pinned capturer", func(t *testing.T) {
		p := setup(t, Black, map[string]Piece{
			"a5": wK, "e5": wP, "h2": wP,
			"d7": bP, "h5": bR, "e8": bK,
		})
		play(t, p, "d7d5")
		expectReject(t, p, "e5d6", ReasonSelfCheck)
	})
}

func TestChecks(t *testing.T) {
	t.Run("pinned piece", func(t *testing.T) {
		p := setup(t, White, map[string]Piece{"e1": wK, "e2": wB, "e8": bR, "a8": bK})
		expectReject(t, p, "e2d3", ReasonSelfCheck)
	})

	t.Run("must resolve check", func(t *testing.T) {
		p := setup(t, White, map[string]Piece{"e1": wK, "a2": wP, "e8": bR, "a8": bK})
		expectReject(t, p, "a2a3", ReasonUnresolvedCheck)
		expectReject(t, p, "e1e2", ReasonUnresolvedCheck)
		play(t, p, "e1d1")
		if p.White.InCheck {
			t.Fatalf("expected white out of check")
		}
	})

	t.Run("king capture", func(t *testing.T) {
		p := setup(t, White, map[string]Piece{"h1": wK, "a1": wR, "a8": bK})
		expectReject(t, p, "a1a8", ReasonKingCapture)
	})

	t.Run("kings never touch", func(t *testing.T) {
		p := setup(t, White, map[string]Piece{"e4": wK, "h2": wP, "e6": bK, "a7": bP})
		expectReject(t, p, "e4e5", ReasonIllegalMovement)
		expectReject(t, p, "e4d5", ReasonIllegalMovement)
		play(t, p, "e4d4")
	})

	t.Run("check flag set on the opponent", func(t *testing.T) {
		p := setup(t, White, map[string]Piece{"e1": wK, "a1": wR, "h8": bK, "g7": bP})
		play(t, p, "a1a8")
		if !p.Black.InCheck || p.White.InCheck {
			t.Fatalf("expected only black in check")
		}
		if got := p.History[0].Notation; got != "Ra8+" {
			t.Fatalf("expected Ra8+, got %q", got)
		}
	})
}

func castlingSetup(t *testing.T, extra map[string]Piece) *Position {
	t.Helper()
	pieces := map[string]Piece{"e1": wK, "a1": wR, "h1": wR, "e8": bK}
	for sq, pc := range extra {
		pieces[sq] = pc
	}
	p := setup(t, White, pieces)
	p.White.Castling = CastlingRights{Kingside: true, Queenside: true}
	return p
}

func TestCastling(t *testing.T) {
	t.Run("kingside", func(t *testing.T) {
		p := castlingSetup(t, nil)
		play(t, p, "e1g1")
		if p.Square(MustCoordinate("g1")).Piece != wK || p.Square(MustCoordinate("f1")).Piece != wR {
			t.Fatalf("expected king g1 and rook f1")
		}
		if !p.Square(MustCoordinate("h1")).Piece.IsEmpty() {
			t.Fatalf("expected h1 empty")
		}
		if p.White.Castling.Any() {
			t.Fatalf("expected castling rights revoked")
		}
		last := p.History[0]
		if last.Notation != "O-O" || last.Castle == nil || last.Castle.From != MustCoordinate("h1") {
			t.Fatalf("unexpected ply %+v", last)
		}
	})

	t.Run("queenside", func(t *testing.T) {
		p := castlingSetup(t, map[string]Piece{"b8": bR})
		play(t, p, "e1c1")
		if p.Square(MustCoordinate("d1")).Piece != wR || p.Square(MustCoordinate("c1")).Piece != wK {
			t.Fatalf("expected king c1 and rook d1")
		}
		if got := p.History[0].Notation; got != "O-O-O" {
			t.Fatalf("expected O-O-O, got %q", got)
		}
	})

	tests := []struct {
		name  string
		extra map[string]Piece
		move  string
	}{
		{name: "through check", extra: map[string]Piece{"f8": bR}, move: "e1g1"},
		{name: "out of check", extra: map[string]Piece{"e7": bR}, move: "e1g1"},
		{name: "into check", extra: map[string]Piece{"g8": bR}, move: "e1g1"},
		{name: "queenside through check", extra: map[string]Piece{"d8": bR}, move: "e1c1"},
		{name: "blocked", extra: map[string]Piece{"b1": wN}, move: "e1c1"},
		{name: "pawn attack on transit", extra: map[string]Piece{"e2": bP}, move: "e1g1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expectReject(t, castlingSetup(t, tt.extra), tt.move, ReasonIllegalMovement)
		})
	}

	t.Run("without the right", func(t *testing.T) {
		p := castlingSetup(t, nil)
		p.White.Castling.Kingside = false
		expectReject(t, p, "e1g1", ReasonIllegalMovement)
		play(t, p, "e1c1")
	})

	t.Run("rook missing is a corrupt position", func(t *testing.T) {
		p := castlingSetup(t, nil)
		p.Board.Put(MustCoordinate("h1"), Piece{})
		before := p.Clone()
		err := p.ApplyMove(Move{From: MustCoordinate("e1"), To: MustCoordinate("g1")})
		if !errors.Is(err, ErrInternal) {
			t.Fatalf("expected internal error, got %v", err)
		}
		if !positionsEqual(before, p) {
			t.Fatalf("internal error modified the position")
		}
	})
}

func TestCastlingRightsNeverReturn(t *testing.T) {
	p := NewGame()
	play(t, p, "g1f3", "g8f6", "h1g1", "f6g8", "g1h1", "g8f6")
	if p.White.Castling.Kingside || !p.White.Castling.Queenside {
		t.Fatalf("expected only the kingside right gone, got %+v", p.White.Castling)
	}
	play(t, p, "e2e4", "f6g8", "e1e2", "g8f6", "e2e1")
	if p.White.Castling.Any() {
		t.Fatalf("expected every white right gone, got %+v", p.White.Castling)
	}
	if !p.Black.Castling.Kingside || !p.Black.Castling.Queenside {
		t.Fatalf("black rights must be untouched, got %+v", p.Black.Castling)
	}

	capture := setup(t, White, map[string]Piece{"e1": wK, "b2": wB, "e8": bK, "a8": bR, "h8": bR})
	capture.Black.Castling = CastlingRights{Kingside: true, Queenside: true}
	play(t, capture, "b2h8")
	if capture.Black.Castling.Kingside || !capture.Black.Castling.Queenside {
		t.Fatalf("expected the captured rook's right revoked, got %+v", capture.Black.Castling)
	}
}

func TestPromotion(t *testing.T) {
	pieces := map[string]Piece{"a7": wP, "e1": wK, "h8": bK}

	t.Run("defaults to queen", func(t *testing.T) {
		p := setup(t, White, pieces)
		play(t, p, "a7a8")
		if got := p.Square(MustCoordinate("a8")).Piece; got != wQ {
			t.Fatalf("expected white queen, got %s", got)
		}
		if got := p.History[0].Notation; got != "a8=Q+" {
			t.Fatalf("expected a8=Q+, got %q", got)
		}
	})

	t.Run("under-promotion", func(t *testing.T) {
		p := setup(t, White, pieces)
		play(t, p, "a7a8n")
		if got := p.Square(MustCoordinate("a8")).Piece; got != wN {
			t.Fatalf("expected white knight, got %s", got)
		}
		if p.History[0].Promotion != Knight || p.History[0].Notation != "a8=N" {
			t.Fatalf("unexpected ply %+v", p.History[0])
		}
	})

	t.Run("capture promotion", func(t *testing.T) {
		withRook := map[string]Piece{"b8": bR}
		for k, v := range pieces {
			withRook[k] = v
		}
		p := setup(t, White, withRook)
		play(t, p, "a7b8r")
		if got := p.History[0].Notation; got != "axb8=R+" {
			t.Fatalf("expected axb8=R+, got %q", got)
		}
	})

	t.Run("king is not a choice", func(t *testing.T) {
		p := setup(t, White, pieces)
		before := p.Clone()
		err := p.ApplyMove(Move{From: MustCoordinate("a7"), To: MustCoordinate("a8"), Promotion: King})
		if r, _ := ReasonOf(err); r != ReasonInvalidPromotion {
			t.Fatalf("expected invalid promotion, got %v", err)
		}
		if !positionsEqual(before, p) {
			t.Fatalf("rejected promotion modified the position")
		}
	})
}

func TestInsufficientMaterialEndsGame(t *testing.T) {
	p := setup(t, White, map[string]Piece{"e1": wK, "c1": wB, "h8": bK, "g5": bP})
	play(t, p, "c1g5")
	if p.State != InsufficientMaterial {
		t.Fatalf("expected insufficient_material, got %s", p.State)
	}
	if !p.State.IsDraw() {
		t.Fatalf("expected a drawn state")
	}
	expectReject(t, p, "h8h7", ReasonGameOver)
}

func TestFiftyMoveRule(t *testing.T) {
	p := NewGame()
	play(t, p, "g1f3", "g8f6")
	if p.FiftyMove != 2 {
		t.Fatalf("expected counter 2, got %d", p.FiftyMove)
	}
	play(t, p, "e2e4")
	if p.FiftyMove != 0 {
		t.Fatalf("expected pawn move to reset the counter, got %d", p.FiftyMove)
	}

	tests := []struct {
		before int
		want   GameState
	}{
		{before: 48, want: InProgress},
		{before: 49, want: Stalemate},
	}
	for _, tt := range tests {
		p := setup(t, White, map[string]Piece{"a1": wK, "b2": wR, "h8": bK})
		p.FiftyMove = tt.before
		play(t, p, "b2g2")
		if p.FiftyMove != tt.before+1 || p.State != tt.want {
			t.Fatalf("from %d: expected %s at %d, got %s at %d", tt.before, tt.want, tt.before+1, p.State, p.FiftyMove)
		}
	}

	late := setup(t, White, map[string]Piece{"a1": wK, "b2": wR, "h8": bK})
	late.FiftyMove = 50
	expectReject(t, late, "b2g2", ReasonGameOver)
}

func TestNotationDisambiguation(t *testing.T) {
	// the pawn keeps mating material on the board
	knights := setup(t, White, map[string]Piece{"h1": wK, "b1": wN, "f3": wN, "h8": bK, "a7": bP})
	play(t, knights, "b1d2")
	if got := knights.History[0].Notation; got != "Nbd2" {
		t.Fatalf("expected Nbd2, got %q", got)
	}

	rooks := setup(t, White, map[string]Piece{"h1": wK, "a1": wR, "a5": wR, "h8": bK})
	play(t, rooks, "a1a3")
	if got := rooks.History[0].Notation; got != "R1a3" {
		t.Fatalf("expected R1a3, got %q", got)
	}
}

func TestMissingKingIsInternalError(t *testing.T) {
	p := setup(t, White, map[string]Piece{"e1": wK, "a1": wR})
	before := p.Clone()
	err := p.ApplyMove(Move{From: MustCoordinate("a1"), To: MustCoordinate("a2")})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if errors.Is(err, ErrMoveRejected) {
		t.Fatalf("internal error must not look like a rejection")
	}
	if !positionsEqual(before, p) {
		t.Fatalf("internal error modified the position")
	}
}

func TestLegalMoves(t *testing.T) {
	moves, err := NewGame().LegalMoves()
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	if len(moves) != 20 {
		t.Fatalf("expected 20 opening moves, got %d", len(moves))
	}

	promo := setup(t, White, map[string]Piece{"b7": wP, "e1": wK, "e8": bK})
	moves, err = promo.LegalMoves()
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	var promotions int
	for _, mv := range moves {
		if mv.From == MustCoordinate("b7") {
			promotions++
		}
	}
	if promotions != 4 {
		t.Fatalf("expected 4 promotion choices, got %d", promotions)
	}
}

func TestReplay(t *testing.T) {
	moves := make([]Move, 0, 3)
	for _, s := range []string{"e2e4", "e7e5", "e1e3"} {
		mv, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		moves = append(moves, mv)
	}
	p, err := Replay(moves)
	if !errors.Is(err, ErrMoveRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "move 3") {
		t.Fatalf("expected the move number in %q", err)
	}
	if p.Turn != 2 {
		t.Fatalf("expected the position after two moves, got turn %d", p.Turn)
	}

	p, err = Replay(moves[:2])
	if err != nil || len(p.History) != 2 {
		t.Fatalf("expected two plies replayed, got %d (err %v)", len(p.History), err)
	}
}
