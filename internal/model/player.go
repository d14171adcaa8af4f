package model

import "github.com/benbeisheim/chessrules-backend/internal/engine"

// Seats holds the player IDs sitting at each side of a game; an empty ID is an open seat.
type Seats struct {
	White string `json:"white"`
	Black string `json:"black"`
}

func (s *Seats) seat(color engine.Color) *string {
	if color == engine.White {
		return &s.White
	}
	return &s.Black
}

// colorOf reports which side playerID plays.
func (s Seats) colorOf(playerID string) (engine.Color, bool) {
	switch {
	case playerID == "":
		return engine.White, false
	case s.White == playerID:
		return engine.White, true
	case s.Black == playerID:
		return engine.Black, true
	}
	return engine.White, false
}

func (s Seats) full() bool {
	return s.White != "" && s.Black != ""
}
