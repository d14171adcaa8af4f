package engine

import "errors"

var (
	// ErrMoveRejected matches every *RejectedError.
	ErrMoveRejected = errors.New("move rejected")
	// ErrInternal marks a corrupted position, such as a missing king.
	ErrInternal = errors.New("internal engine error")

	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidPromotion  = errors.New("invalid promotion choice")
)

// Reason says which legality gate declined a move.
type Reason uint8

const (
	ReasonUnknown Reason = iota
	ReasonGameOver
	ReasonEmptySquare
	ReasonNotYourTurn
	ReasonKingCapture
	ReasonFriendlyCapture
	ReasonIllegalMovement
	ReasonInvalidPromotion
	ReasonUnresolvedCheck
	ReasonSelfCheck
)

func (r Reason) String() string {
	switch r {
	case ReasonGameOver:
		return "game_over"
	case ReasonEmptySquare:
		return "empty_square"
	case ReasonNotYourTurn:
		return "not_your_turn"
	case ReasonKingCapture:
		return "king_capture"
	case ReasonFriendlyCapture:
		return "friendly_capture"
	case ReasonIllegalMovement:
		return "illegal_movement"
	case ReasonInvalidPromotion:
		return "invalid_promotion"
	case ReasonUnresolvedCheck:
		return "unresolved_check"
	case ReasonSelfCheck:
		return "self_check"
	default:
		return "unknown"
	}
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// RejectedError is returned by ApplyMove when the move is not legal. The position is left untouched.
type RejectedError struct {
	Reason Reason
}

func (e *RejectedError) Error() string {
	return "move rejected: " + e.Reason.String()
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrMoveRejected
}

func reject(r Reason) error {
	return &RejectedError{Reason: r}
}

// ReasonOf extracts the rejection reason from err, if it is a rejection.
func ReasonOf(err error) (Reason, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return ReasonUnknown, false
}
