package model

import "fmt"

type SerializedPiece struct {
	Color    string `json:"color"`
	Symbol   string `json:"symbol"`
	HasMoved bool   `json:"has_moved"`
}

// SerializedState is the wire form of a game. Move history is not part of it.
type SerializedState struct {
	Board       [][]*SerializedPiece `json:"board"`
	CurrentTurn string               `json:"current_turn"`
}

var symbolTypes = map[string]PieceType{
	"♔": King, "♕": Queen, "♖": Rook, "♗": Bishop, "♘": Knight, "♙": Pawn,
	"♚": King, "♛": Queen, "♜": Rook, "♝": Bishop, "♞": Knight, "♟": Pawn,
	"king": King, "queen": Queen, "rook": Rook, "bishop": Bishop, "knight": Knight, "pawn": Pawn,
}

func (gs *GameState) ToTransport() SerializedState {
	rows := make([][]*SerializedPiece, boardSize)
	for row := 0; row < boardSize; row++ {
		rows[row] = make([]*SerializedPiece, boardSize)
		for col := 0; col < boardSize; col++ {
			piece := gs.board[row][col]
			if piece.IsEmpty() {
				continue
			}
			rows[row][col] = &SerializedPiece{
				Color:    string(piece.Color),
				Symbol:   piece.Symbol(),
				HasMoved: piece.HasMoved,
			}
		}
	}
	return SerializedState{
		Board:       rows,
		CurrentTurn: string(gs.currentTurn),
	}
}

// FromTransport rebuilds a game from its wire form. The result has an empty
// history. The one-king-per-color rule is not checked.
func FromTransport(state SerializedState) (*GameState, error) {
	if len(state.Board) != boardSize {
		return nil, fmt.Errorf("%w: board has %d rows", ErrInvalidPayload, len(state.Board))
	}
	turn := Color(state.CurrentTurn)
	if !turn.Valid() {
		return nil, fmt.Errorf("%w: current turn %q", ErrInvalidPayload, state.CurrentTurn)
	}

	var board Board
	for row, cells := range state.Board {
		if len(cells) != boardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidPayload, row, len(cells))
		}
		for col, cell := range cells {
			if cell == nil {
				continue
			}
			piece, err := cell.toPiece()
			if err != nil {
				return nil, fmt.Errorf("%w at %s", err, Position{Row: row, Col: col})
			}
			board[row][col] = piece
		}
	}
	return NewGameStateFromBoard(board, turn), nil
}

func (sp *SerializedPiece) toPiece() (Piece, error) {
	color := Color(sp.Color)
	if !color.Valid() {
		return Piece{}, fmt.Errorf("%w: piece color %q", ErrInvalidPayload, sp.Color)
	}
	pieceType, ok := symbolTypes[sp.Symbol]
	if !ok {
		return Piece{}, fmt.Errorf("%w: piece symbol %q", ErrInvalidPayload, sp.Symbol)
	}
	return Piece{Type: pieceType, Color: color, HasMoved: sp.HasMoved}, nil
}
