package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

func TestGameSeatsPlayers(t *testing.T) {
	g := NewGame("g1")

	if color, err := g.AddPlayer("alice", "Alice"); err != nil || color != White {
		t.Fatalf("expected alice seated as white, got %s %v", color, err)
	}
	if !g.CanSpectate() {
		t.Fatalf("expected an open seat after one player")
	}
	if color, err := g.AddPlayer("bob", "Bob"); err != nil || color != Black {
		t.Fatalf("expected bob seated as black, got %s %v", color, err)
	}
	if _, err := g.AddPlayer("carol", "Carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}
	if g.IsPlayerInGame("carol") {
		t.Fatalf("expected carol not to be seated")
	}

	view := g.View()
	if view.Players.White.Name != "Alice" || view.Players.Black.ID != "bob" {
		t.Fatalf("expected seats in view, got %+v", view.Players)
	}
}

func TestGameEnforcesSeats(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("alice", "Alice")
	g.AddPlayer("bob", "Bob")

	e2, e4 := Position{Row: 6, Col: 4}, Position{Row: 4, Col: 4}

	if err := g.MakeMove("mallory", e2, e4); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("expected ErrNotInGame, got %v", err)
	}
	if err := g.MakeMove("bob", e2, e4); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := g.MakeMove("alice", e2, e4); err != nil {
		t.Fatalf("expected alice's move to be accepted, got %v", err)
	}
	if err := g.Undo("mallory"); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("expected ErrNotInGame on undo, got %v", err)
	}
	if err := g.Undo("bob"); err != nil {
		t.Fatalf("expected either player to undo, got %v", err)
	}
	if err := g.Redo("alice"); err != nil {
		t.Fatalf("redo: %v", err)
	}

	_, turn := g.Position()
	if turn != Black {
		t.Fatalf("expected black to move, got %s", turn)
	}
}

func TestGameHotSeat(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("solo", "Solo")
	g.AddPlayer("solo", "Solo")

	if err := g.MakeMove("solo", Position{Row: 6, Col: 4}, Position{Row: 4, Col: 4}); err != nil {
		t.Fatalf("white move: %v", err)
	}
	if err := g.MakeMove("solo", Position{Row: 1, Col: 4}, Position{Row: 3, Col: 4}); err != nil {
		t.Fatalf("black move: %v", err)
	}
}

func TestGameView(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("solo", "Solo")
	g.AddPlayer("solo", "Solo")
	g.MakeMove("solo", Position{Row: 6, Col: 4}, Position{Row: 4, Col: 4})
	g.MakeMove("solo", Position{Row: 1, Col: 3}, Position{Row: 3, Col: 3})
	g.MakeMove("solo", Position{Row: 4, Col: 4}, Position{Row: 3, Col: 3})

	view := g.View()
	if view.ID != "g1" || view.ToMove != Black || view.Status != StatusActive {
		t.Fatalf("unexpected view header: %+v", view)
	}
	if len(view.MoveHistory) != 3 || !view.CanUndo || view.CanRedo {
		t.Fatalf("unexpected history flags: %d records undo=%v redo=%v", len(view.MoveHistory), view.CanUndo, view.CanRedo)
	}
	if view.LastMove == nil || view.LastMove.To != (Position{Row: 3, Col: 3}) {
		t.Fatalf("expected last move to d5, got %+v", view.LastMove)
	}
	if len(view.CapturedPieces.Black) != 1 {
		t.Fatalf("expected one captured black piece, got %+v", view.CapturedPieces)
	}
	if view.BoardState.Board[3][3] == nil || view.BoardState.Board[3][3].Color != "white" {
		t.Fatalf("expected white pawn on d5 in the board state")
	}
}

func TestGameValidMoves(t *testing.T) {
	state := newTestGame(t, White, map[string]Piece{"e1": wK, "e2": wR, "e8": bR, "a8": bK})
	g := NewGameFromState("g1", state)

	if got := g.ValidMoves(sq(t, "e2"), false); len(got) != 13 {
		t.Fatalf("expected 13 pseudo-legal moves, got %d", len(got))
	}
	if got := g.ValidMoves(sq(t, "e2"), true); len(got) != 6 {
		t.Fatalf("expected 6 legal moves, got %d", len(got))
	}
}

func TestGameSerializesConcurrentMoves(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("solo", "Solo")
	g.AddPlayer("solo", "Solo")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- g.MakeMove("solo", Position{Row: 6, Col: 4}, Position{Row: 4, Col: 4})
		}()
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted move, got %d", accepted)
	}
	if len(g.View().MoveHistory) != 1 {
		t.Fatalf("expected one history record")
	}
}

// recordingConn keeps every game state written to it.
type recordingConn struct {
	mu     sync.Mutex
	states []GameView
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	msg, ok := v.(ws.Message)
	if !ok || msg.Type != ws.MessageTypeGameState {
		return nil
	}
	var view GameView
	if err := json.Unmarshal(msg.Payload, &view); err != nil {
		return err
	}
	c.mu.Lock()
	c.states = append(c.states, view)
	c.mu.Unlock()
	return nil
}

func (c *recordingConn) WriteMessage(int, []byte) error { return nil }

func (c *recordingConn) Close() error { return nil }

func TestBroadcastEndsOnLatestState(t *testing.T) {
	g := NewGame("g1")
	g.AddPlayer("solo", "Solo")
	g.AddPlayer("solo", "Solo")

	conn := &recordingConn{}
	if err := g.RegisterConnection("solo", conn); err != nil {
		t.Fatalf("register: %v", err)
	}

	moves := [][2]Position{
		{{Row: 6, Col: 4}, {Row: 4, Col: 4}},
		{{Row: 1, Col: 4}, {Row: 3, Col: 4}},
		{{Row: 7, Col: 6}, {Row: 5, Col: 5}},
		{{Row: 0, Col: 1}, {Row: 2, Col: 2}},
		{{Row: 7, Col: 5}, {Row: 4, Col: 2}},
		{{Row: 0, Col: 6}, {Row: 2, Col: 5}},
	}
	for _, m := range moves {
		if err := g.MakeMove("solo", m[0], m[1]); err != nil {
			t.Fatalf("move %v-%v: %v", m[0], m[1], err)
		}
	}
	g.pending.Wait()

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.states) == 0 {
		t.Fatalf("expected at least one state to be delivered")
	}
	last := conn.states[len(conn.states)-1]
	if len(last.MoveHistory) != len(moves) {
		t.Fatalf("expected the last delivered state to hold %d moves, got %d", len(moves), len(last.MoveHistory))
	}
	for i := 1; i < len(conn.states); i++ {
		if len(conn.states[i].MoveHistory) < len(conn.states[i-1].MoveHistory) {
			t.Fatalf("expected states in commit order, frame %d went from %d to %d moves",
				i, len(conn.states[i-1].MoveHistory), len(conn.states[i].MoveHistory))
		}
	}
}

func TestBroadcastSkipsStaleState(t *testing.T) {
	g := NewGame("g1")
	conn := &recordingConn{}
	g.connections.connections["p1"] = conn

	g.broadcastState(GameView{ID: "newer"}, 2)
	g.broadcastState(GameView{ID: "older"}, 1)

	if len(conn.states) != 1 || conn.states[0].ID != "newer" {
		t.Fatalf("expected only the newer state, got %+v", conn.states)
	}
}
