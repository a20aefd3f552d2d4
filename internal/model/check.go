package model

type GameStatus string

const (
	StatusActive    GameStatus = "active"
	StatusCheck     GameStatus = "check"
	StatusCheckmate GameStatus = "checkmate"
)

func (gs *GameState) findKing(color Color) (Position, bool) {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := gs.board[row][col]
			if piece.Type == King && piece.Color == color {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// IsKingInCheck reports whether any opposing piece has a valid move onto the
// king of color. A missing king is never in check.
func (gs *GameState) IsKingInCheck(color Color) bool {
	kingPos, ok := gs.findKing(color)
	if !ok {
		return false
	}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := gs.board[row][col]
			if piece.IsEmpty() || piece.Color == color {
				continue
			}
			if gs.IsValidMove(Position{Row: row, Col: col}, kingPos) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate tries every pseudo-legal move of color directly on the board
// and reports whether none of them resolves the check. The board is restored
// after every attempt.
func (gs *GameState) IsCheckmate(color Color) bool {
	if !gs.IsKingInCheck(color) {
		return false
	}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			from := Position{Row: row, Col: col}
			piece := gs.board.At(from)
			if piece.IsEmpty() || piece.Color != color {
				continue
			}
			for _, to := range gs.GetValidMoves(from) {
				if !gs.leavesKingInCheck(from, to) {
					return false
				}
			}
		}
	}
	return true
}

// leavesKingInCheck applies from->to, tests the mover's king and reverts.
func (gs *GameState) leavesKingInCheck(from, to Position) bool {
	piece := gs.board.At(from)
	captured := gs.board.At(to)

	gs.board.Set(to, piece)
	gs.board.Clear(from)
	inCheck := gs.IsKingInCheck(piece.Color)
	gs.board.Set(from, piece)
	gs.board.Set(to, captured)

	return inCheck
}

// Status derives the position's state for the side to move. Checkmate is
// never stored.
func (gs *GameState) Status() (GameStatus, *Color) {
	if gs.IsCheckmate(gs.currentTurn) {
		winner := gs.currentTurn.Opponent()
		return StatusCheckmate, &winner
	}
	if gs.IsKingInCheck(gs.currentTurn) {
		return StatusCheck, nil
	}
	return StatusActive, nil
}
