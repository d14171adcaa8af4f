package model

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

// WSMove is a move as clients send it, over REST or the websocket: algebraic squares and an optional
// promotion choice by name or letter.
type WSMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Parse converts the client move into an engine move. An empty promotion stays unset.
func (m WSMove) Parse() (engine.Move, error) {
	from, err := engine.ParseCoordinate(m.From)
	if err != nil {
		return engine.Move{}, err
	}
	to, err := engine.ParseCoordinate(m.To)
	if err != nil {
		return engine.Move{}, err
	}
	mv := engine.Move{From: from, To: to}
	if strings.TrimSpace(m.Promotion) != "" {
		if mv.Promotion, err = engine.ParsePromotion(m.Promotion); err != nil {
			return engine.Move{}, err
		}
	}
	return mv, nil
}

// ParseMoves converts a client move list, reporting the index of the first malformed entry.
func ParseMoves(moves []WSMove) ([]engine.Move, error) {
	out := make([]engine.Move, 0, len(moves))
	for i, m := range moves {
		mv, err := m.Parse()
		if err != nil {
			return nil, &MoveListError{Index: i, Err: err}
		}
		out = append(out, mv)
	}
	return out, nil
}

// MoveListError locates a malformed move inside a list.
type MoveListError struct {
	Index int
	Err   error
}

func (e *MoveListError) Error() string {
	return fmt.Sprintf("move %d: %v", e.Index+1, e.Err)
}

func (e *MoveListError) Unwrap() error {
	return e.Err
}
