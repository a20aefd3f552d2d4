package model

import "testing"

func sq(t *testing.T, name string) Position {
	t.Helper()
	pos, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("invalid square %q: %v", name, err)
	}
	return pos
}

// newTestGame builds a game with only the given pieces on the board.
func newTestGame(t *testing.T, turn Color, placements map[string]Piece) *GameState {
	t.Helper()
	var board Board
	for name, piece := range placements {
		board.Set(sq(t, name), piece)
	}
	return NewGameStateFromBoard(board, turn)
}

func mustMove(t *testing.T, gs *GameState, from, to string) {
	t.Helper()
	if err := gs.MakeMove(sq(t, from), sq(t, to)); err != nil {
		t.Fatalf("move %s-%s: %v\n%s", from, to, err, gs.Board())
	}
}

func moved(p Piece) Piece {
	p.HasMoved = true
	return p
}

var (
	wK = NewPiece(King, White)
	wQ = NewPiece(Queen, White)
	wR = NewPiece(Rook, White)
	wB = NewPiece(Bishop, White)
	wN = NewPiece(Knight, White)
	wP = NewPiece(Pawn, White)
	bK = NewPiece(King, Black)
	bQ = NewPiece(Queen, Black)
	bR = NewPiece(Rook, Black)
	bN = NewPiece(Knight, Black)
	bP = NewPiece(Pawn, Black)
)
