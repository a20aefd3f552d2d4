package model

// GameState is the rules engine for a single game. It is not safe for
// concurrent use; Game provides the locking for networked callers.
type GameState struct {
	board       Board
	currentTurn Color
	history     []MoveRecord
	// cursor indexes the most recently applied record, -1 when none is.
	cursor int
}

func NewGameState() *GameState {
	return &GameState{
		board:       NewBoard(),
		currentTurn: White,
		history:     make([]MoveRecord, 0),
		cursor:      -1,
	}
}

// NewGameStateFromBoard starts a game from an arbitrary position with an
// empty history.
func NewGameStateFromBoard(board Board, turn Color) *GameState {
	return &GameState{
		board:       board,
		currentTurn: turn,
		history:     make([]MoveRecord, 0),
		cursor:      -1,
	}
}

func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) CurrentTurn() Color {
	return gs.currentTurn
}

func (gs *GameState) switchTurn() {
	gs.currentTurn = gs.currentTurn.Opponent()
}

// MakeMove validates and applies a move for the side to move. On any error
// the board and turn are left exactly as they were.
func (gs *GameState) MakeMove(from, to Position) error {
	if !from.Valid() || !to.Valid() {
		return ErrOutOfBounds
	}
	piece := gs.board.At(from)
	if piece.IsEmpty() {
		return ErrEmptySquare
	}
	if piece.Color != gs.currentTurn {
		return ErrWrongTurn
	}
	if !gs.IsValidMove(from, to) {
		return ErrIllegalMove
	}

	captured := gs.board.At(to)
	notation := moveNotation(piece, captured, from, to)

	gs.board.Set(to, piece)
	gs.board.Clear(from)
	if gs.IsKingInCheck(piece.Color) {
		gs.board.Set(from, piece)
		gs.board.Set(to, captured)
		return ErrSelfCheck
	}

	moved := piece
	moved.HasMoved = true
	gs.board.Set(to, moved)

	// a fresh move discards the redo branch
	gs.history = append(gs.history[:gs.cursor+1], MoveRecord{
		From:     from,
		To:       to,
		Captured: captured,
		Piece:    piece,
		Notation: notation + gs.checkSuffix(piece.Color.Opponent()),
	})
	gs.cursor++
	gs.switchTurn()
	return nil
}

func (gs *GameState) checkSuffix(color Color) string {
	if gs.IsCheckmate(color) {
		return "#"
	}
	if gs.IsKingInCheck(color) {
		return "+"
	}
	return ""
}

// UndoMove reverts the record at the cursor. HasMoved on the returned piece
// stays true.
func (gs *GameState) UndoMove() error {
	if gs.cursor < 0 {
		return ErrNothingToUndo
	}
	record := gs.history[gs.cursor]
	gs.board.Set(record.From, gs.board.At(record.To))
	gs.board.Set(record.To, record.Captured)
	gs.switchTurn()
	gs.cursor--
	return nil
}

// RedoMove reapplies the record after the cursor.
func (gs *GameState) RedoMove() error {
	if gs.cursor+1 >= len(gs.history) {
		return ErrNothingToRedo
	}
	record := gs.history[gs.cursor+1]
	gs.board.Set(record.To, gs.board.At(record.From))
	gs.board.Clear(record.From)
	gs.switchTurn()
	gs.cursor++
	return nil
}

func (gs *GameState) CanUndo() bool {
	return gs.cursor >= 0
}

func (gs *GameState) CanRedo() bool {
	return gs.cursor+1 < len(gs.history)
}

// History returns a copy of the applied records, oldest first.
func (gs *GameState) History() []MoveRecord {
	applied := make([]MoveRecord, gs.cursor+1)
	copy(applied, gs.history[:gs.cursor+1])
	return applied
}

// HistoryLen includes records that can still be redone.
func (gs *GameState) HistoryLen() int {
	return len(gs.history)
}

func (gs *GameState) Cursor() int {
	return gs.cursor
}

// GetValidMoves returns every destination the piece on from can reach under
// its movement rules, without filtering moves that expose its own king.
func (gs *GameState) GetValidMoves(from Position) []Position {
	moves := make([]Position, 0)
	if !from.Valid() || gs.board.At(from).IsEmpty() {
		return moves
	}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			to := Position{Row: row, Col: col}
			if to == from {
				continue
			}
			if gs.IsValidMove(from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

// GetLegalMoves is GetValidMoves minus the moves MakeMove would reject for
// leaving the mover's king in check.
func (gs *GameState) GetLegalMoves(from Position) []Position {
	legal := make([]Position, 0)
	for _, to := range gs.GetValidMoves(from) {
		if !gs.leavesKingInCheck(from, to) {
			legal = append(legal, to)
		}
	}
	return legal
}

// CapturedPieces lists the pieces taken by the applied part of the history,
// grouped by the captured piece's color.
func (gs *GameState) CapturedPieces() CapturedPieces {
	captured := CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
	for _, record := range gs.history[:gs.cursor+1] {
		if record.Captured.IsEmpty() {
			continue
		}
		switch record.Captured.Color {
		case White:
			captured.White = append(captured.White, record.Captured)
		case Black:
			captured.Black = append(captured.Black, record.Captured)
		}
	}
	return captured
}
