package model

// GameView is the read model sent to clients.
type GameView struct {
	ID             string          `json:"id"`
	BoardState     SerializedState `json:"boardState"`
	ToMove         Color           `json:"toMove"`
	Status         GameStatus      `json:"status"`
	Winner         *Color          `json:"winner"`
	IsCheck        bool            `json:"isCheck"`
	CapturedPieces CapturedPieces  `json:"capturedPieces"`
	MoveHistory    []MoveRecord    `json:"moveHistory"`
	LastMove       *SimpleMove     `json:"lastMove"`
	CanUndo        bool            `json:"canUndo"`
	CanRedo        bool            `json:"canRedo"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

func (gs *GameState) view(id string) GameView {
	status, winner := gs.Status()
	history := gs.History()

	v := GameView{
		ID:             id,
		BoardState:     gs.ToTransport(),
		ToMove:         gs.currentTurn,
		Status:         status,
		Winner:         winner,
		IsCheck:        status != StatusActive,
		CapturedPieces: gs.CapturedPieces(),
		MoveHistory:    history,
		CanUndo:        gs.CanUndo(),
		CanRedo:        gs.CanRedo(),
	}
	if n := len(history); n > 0 {
		v.LastMove = &SimpleMove{From: history[n-1].From, To: history[n-1].To}
	}
	return v
}
