package model

type Player struct {
	ID   string
	Name string
}

type ClientPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// MatchFoundEvent is sent to each queued player once paired.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
