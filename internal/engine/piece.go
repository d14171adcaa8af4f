package engine

import (
	"encoding/json"
	"fmt"
)

type PieceKind uint8

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PromotionChoices are the kinds a pawn may become on the last rank.
var PromotionChoices = []PieceKind{Queen, Rook, Bishop, Knight}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return ""
	}
}

// Letter is the SAN piece letter; pawns have none.
func (k PieceKind) Letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

func (k PieceKind) isPromotionChoice() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*k = NoPiece
	case "pawn":
		*k = Pawn
	case "knight":
		*k = Knight
	case "bishop":
		*k = Bishop
	case "rook":
		*k = Rook
	case "queen":
		*k = Queen
	case "king":
		*k = King
	default:
		return fmt.Errorf("unknown piece kind %q", text)
	}
	return nil
}

// Piece is a kind and a color. The zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoPiece
}

func (p Piece) Is(kind PieceKind, color Color) bool {
	return p.Kind == kind && p.Color == color
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

type pieceJSON struct {
	Kind  PieceKind `json:"kind"`
	Color Color     `json:"color"`
}

// MarshalJSON encodes an empty square as null.
func (p Piece) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(pieceJSON{Kind: p.Kind, Color: p.Color})
}

func (p *Piece) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Piece{}
		return nil
	}
	var v pieceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Piece{Kind: v.Kind, Color: v.Color}
	return nil
}
