package model

// IsValidMove reports whether the piece on from may move to to under its
// movement rules. It does not consider whose turn it is or whether the move
// leaves the mover's own king in check.
func (gs *GameState) IsValidMove(from, to Position) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	piece := gs.board.At(from)
	if piece.IsEmpty() {
		return false
	}
	target := gs.board.At(to)
	if !target.IsEmpty() && target.Color == piece.Color {
		return false
	}

	switch piece.Type {
	case Pawn:
		return gs.isValidPawnMove(piece, from, to)
	case Rook:
		return gs.isValidRookMove(from, to)
	case Knight:
		return isValidKnightMove(from, to)
	case Bishop:
		return gs.isValidBishopMove(from, to)
	case Queen:
		return gs.isValidQueenMove(from, to)
	case King:
		return isValidKingMove(from, to)
	default:
		return false
	}
}

func (gs *GameState) isValidPawnMove(piece Piece, from, to Position) bool {
	direction := -1
	if piece.Color == Black {
		direction = 1
	}

	if from.Col == to.Col {
		if to.Row == from.Row+direction && gs.board.At(to).IsEmpty() {
			return true
		}
		if !piece.HasMoved && to.Row == from.Row+2*direction {
			between := Position{Row: from.Row + direction, Col: from.Col}
			return gs.board.At(to).IsEmpty() && gs.board.At(between).IsEmpty()
		}
		return false
	}

	// capture only; diagonal onto an empty square is never legal
	if abs(to.Col-from.Col) == 1 && to.Row == from.Row+direction {
		target := gs.board.At(to)
		return !target.IsEmpty() && target.Color != piece.Color
	}
	return false
}

func (gs *GameState) isValidRookMove(from, to Position) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return gs.isPathClear(from, to)
}

func isValidKnightMove(from, to Position) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return (dr == 2 && dc == 1) || (dr == 1 && dc == 2)
}

func (gs *GameState) isValidBishopMove(from, to Position) bool {
	if abs(to.Row-from.Row) != abs(to.Col-from.Col) {
		return false
	}
	return gs.isPathClear(from, to)
}

func (gs *GameState) isValidQueenMove(from, to Position) bool {
	return gs.isValidRookMove(from, to) || gs.isValidBishopMove(from, to)
}

func isValidKingMove(from, to Position) bool {
	return abs(to.Row-from.Row) <= 1 && abs(to.Col-from.Col) <= 1
}

// isPathClear walks from toward to one unit step at a time. Both endpoints
// are excluded. Only meaningful for straight or diagonal lines.
func (gs *GameState) isPathClear(from, to Position) bool {
	rowStep, colStep := sign(to.Row-from.Row), sign(to.Col-from.Col)
	current := Position{Row: from.Row + rowStep, Col: from.Col + colStep}
	for current != to {
		if !current.Valid() {
			return false
		}
		if !gs.board.At(current).IsEmpty() {
			return false
		}
		current.Row += rowStep
		current.Col += colStep
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
