package model

import "errors"

var (
	ErrOutOfBounds    = errors.New("position out of bounds")
	ErrEmptySquare    = errors.New("no piece at from square")
	ErrWrongTurn      = errors.New("piece belongs to the side not on move")
	ErrIllegalMove    = errors.New("illegal move")
	ErrSelfCheck      = errors.New("move leaves king in check")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrInvalidPayload = errors.New("invalid game payload")

	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn to move")
	ErrAlreadyQueued = errors.New("player already in queue")
)

// MoveResult is the transport form of an accepted or rejected request.
type MoveResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}

func NewMoveResult(err error) MoveResult {
	if err != nil {
		return MoveResult{Accepted: false, Reason: err.Error()}
	}
	return MoveResult{Accepted: true, Reason: "ok"}
}
