package fen

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func TestEncodeStartPosition(t *testing.T) {
	if got := Encode(model.NewBoard(), model.White); got != startFEN {
		t.Fatalf("expected %s, got %s", startFEN, got)
	}
}

func TestEncodeAfterMoves(t *testing.T) {
	gs := model.NewGameState()
	if err := gs.MakeMove(model.Position{Row: 6, Col: 4}, model.Position{Row: 4, Col: 4}); err != nil {
		t.Fatalf("move: %v", err)
	}

	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1"
	if got := Encode(gs.Board(), gs.CurrentTurn()); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDecodeStartPosition(t *testing.T) {
	gs, err := Decode(startFEN)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gs.Board() != model.NewBoard() {
		t.Fatalf("expected the standard layout, got\n%s", gs.Board())
	}
	if gs.CurrentTurn() != model.White {
		t.Fatalf("expected white to move, got %s", gs.CurrentTurn())
	}
	if gs.HistoryLen() != 0 {
		t.Fatalf("expected empty history")
	}
}

func TestDecodeMarksDisplacedPiecesMoved(t *testing.T) {
	gs, err := Decode("rnbqkbnr/pppppppp/8/8/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	board := gs.Board()

	if p := board.At(model.Position{Row: 4, Col: 4}); p.Type != model.Pawn || !p.HasMoved {
		t.Fatalf("expected moved pawn on e4, got %+v", p)
	}
	if p := board.At(model.Position{Row: 5, Col: 5}); p.Type != model.Knight || !p.HasMoved {
		t.Fatalf("expected moved knight on f3, got %+v", p)
	}
	if p := board.At(model.Position{Row: 6, Col: 3}); p.Type != model.Pawn || p.HasMoved {
		t.Fatalf("expected unmoved pawn on d2, got %+v", p)
	}
	if gs.CurrentTurn() != model.Black {
		t.Fatalf("expected black to move, got %s", gs.CurrentTurn())
	}

	// the e-pawn can no longer advance two squares
	if gs.IsValidMove(model.Position{Row: 4, Col: 4}, model.Position{Row: 2, Col: 4}) {
		t.Fatalf("expected no double step for a displaced pawn")
	}
}

func TestRoundTrip(t *testing.T) {
	gs := model.NewGameState()
	moves := [][2]model.Position{
		{{Row: 6, Col: 5}, {Row: 5, Col: 5}},
		{{Row: 1, Col: 4}, {Row: 3, Col: 4}},
		{{Row: 6, Col: 6}, {Row: 4, Col: 6}},
		{{Row: 0, Col: 3}, {Row: 4, Col: 7}},
	}
	for _, m := range moves {
		if err := gs.MakeMove(m[0], m[1]); err != nil {
			t.Fatalf("move %v-%v: %v", m[0], m[1], err)
		}
	}

	encoded := Encode(gs.Board(), gs.CurrentTurn())
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode %q: %v", encoded, err)
	}
	if got := Encode(decoded.Board(), decoded.CurrentTurn()); got != encoded {
		t.Fatalf("expected %s, got %s", encoded, got)
	}
	if !decoded.IsCheckmate(model.White) {
		t.Fatalf("expected the decoded position to still be checkmate")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not a fen", "rnbqkbnr/pppppppp/8/8 w - - 0 1"} {
		if _, err := Decode(s); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("expected ErrInvalidFEN for %q, got %v", s, err)
		}
	}
}
