// Package fen converts engine positions to and from Forsyth-Edwards Notation
// using notnil/chess for the string format.
//
// Only piece placement and side to move carry over. Castling and en-passant
// fields are always written as "-" since the engine implements neither.
package fen

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/notnil/chess"
)

var ErrInvalidFEN = errors.New("invalid FEN")

var toChess = map[model.Color]map[model.PieceType]chess.Piece{
	model.White: {
		model.King: chess.WhiteKing, model.Queen: chess.WhiteQueen, model.Rook: chess.WhiteRook,
		model.Bishop: chess.WhiteBishop, model.Knight: chess.WhiteKnight, model.Pawn: chess.WhitePawn,
	},
	model.Black: {
		model.King: chess.BlackKing, model.Queen: chess.BlackQueen, model.Rook: chess.BlackRook,
		model.Bishop: chess.BlackBishop, model.Knight: chess.BlackKnight, model.Pawn: chess.BlackPawn,
	},
}

var fromChessType = map[chess.PieceType]model.PieceType{
	chess.King:   model.King,
	chess.Queen:  model.Queen,
	chess.Rook:   model.Rook,
	chess.Bishop: model.Bishop,
	chess.Knight: model.Knight,
	chess.Pawn:   model.Pawn,
}

// square maps engine coordinates (row 0 = rank 8) onto a notnil square.
func square(pos model.Position) chess.Square {
	rank := 7 - pos.Row
	return chess.Square(rank*8 + pos.Col)
}

func position(sq chess.Square) model.Position {
	return model.Position{Row: 7 - int(sq.Rank()), Col: int(sq.File())}
}

// Encode returns the FEN of board with turn to move.
func Encode(board model.Board, turn model.Color) string {
	pieces := make(map[chess.Square]chess.Piece)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := board[row][col]
			if piece.IsEmpty() {
				continue
			}
			pos := model.Position{Row: row, Col: col}
			pieces[square(pos)] = toChess[piece.Color][piece.Type]
		}
	}
	side := "w"
	if turn == model.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(pieces).String(), side)
}

// Decode builds a fresh game from a FEN string. Pawns off their starting rank
// and every other piece off its starting square are marked as moved, so a
// two-square pawn advance is only offered from the home rank.
func Decode(s string) (*model.GameState, error) {
	opt, err := chess.FEN(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	var board model.Board
	for sq, p := range pos.Board().SquareMap() {
		pieceType, ok := fromChessType[p.Type()]
		if !ok {
			continue
		}
		color := model.White
		if p.Color() == chess.Black {
			color = model.Black
		}
		at := position(sq)
		piece := model.NewPiece(pieceType, color)
		piece.HasMoved = !onStartingSquare(piece, at)
		board.Set(at, piece)
	}

	turn := model.White
	if pos.Turn() == chess.Black {
		turn = model.Black
	}
	return model.NewGameStateFromBoard(board, turn), nil
}

func onStartingSquare(piece model.Piece, at model.Position) bool {
	start := model.NewBoard().At(at)
	return start.Type == piece.Type && start.Color == piece.Color
}
