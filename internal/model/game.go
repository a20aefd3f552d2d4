package model

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// a websocket connection allows one concurrent writer
	writeMu sync.Mutex
	// broadcastMu orders broadcasts; sentSeq is the newest state sent
	broadcastMu sync.Mutex
	sentSeq     uint64
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game owns one GameState and serialises every access to it. The engine's
// scan-and-revert sequences must never interleave with another caller.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *GameState
	white       ClientPlayer
	black       ClientPlayer
	connections *GameConnections
	// seq counts committed changes; guarded by mu
	seq     uint64
	pending sync.WaitGroup
}

func NewGame(id string) *Game {
	return NewGameFromState(id, NewGameState())
}

func NewGameFromState(id string, state *GameState) *Game {
	return &Game{
		ID:          id,
		state:       state,
		white:       ClientPlayer{Color: White},
		black:       ClientPlayer{Color: Black},
		connections: NewGameConnections(),
	}
}

// AddPlayer seats the player as white, then black. The same player may take
// both seats, which makes a single-device game.
func (g *Game) AddPlayer(playerID, name string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.white.ID == "" {
		g.white = ClientPlayer{ID: playerID, Name: name, Color: White}
		return White, nil
	}
	if g.black.ID == "" {
		g.black = ClientPlayer{ID: playerID, Name: name, Color: Black}
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return playerID != "" && (g.white.ID == playerID || g.black.ID == playerID)
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.white.ID == "" || g.black.ID == ""
}

func (g *Game) playsColor(playerID string, color Color) bool {
	switch color {
	case White:
		return g.white.ID == playerID
	case Black:
		return g.black.ID == playerID
	}
	return false
}

// MakeMove applies a move on behalf of a seated player whose color is on move.
func (g *Game) MakeMove(playerID string, from, to Position) error {
	g.mu.Lock()
	if !g.isPlayerInGame(playerID) {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if !g.playsColor(playerID, g.state.CurrentTurn()) {
		g.mu.Unlock()
		return ErrNotYourTurn
	}
	if err := g.state.MakeMove(from, to); err != nil {
		g.mu.Unlock()
		return err
	}
	view, seq := g.commitLocked()
	g.mu.Unlock()

	log.Debugw("move applied", "game", g.ID, "from", SquareName(from), "to", SquareName(to), "status", view.Status)
	g.broadcast(view, seq)
	return nil
}

func (g *Game) Undo(playerID string) error {
	return g.stepHistory(playerID, (*GameState).UndoMove)
}

func (g *Game) Redo(playerID string) error {
	return g.stepHistory(playerID, (*GameState).RedoMove)
}

func (g *Game) stepHistory(playerID string, step func(*GameState) error) error {
	g.mu.Lock()
	if !g.isPlayerInGame(playerID) {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if err := step(g.state); err != nil {
		g.mu.Unlock()
		return err
	}
	view, seq := g.commitLocked()
	g.mu.Unlock()

	g.broadcast(view, seq)
	return nil
}

// ValidMoves lists destinations for the piece on from. With legalOnly the
// moves that would leave the mover's king in check are removed.
func (g *Game) ValidMoves(from Position, legalOnly bool) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	if legalOnly {
		return g.state.GetLegalMoves(from)
	}
	return g.state.GetValidMoves(from)
}

func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

// commitLocked snapshots the view and numbers it. Caller holds g.mu.
func (g *Game) commitLocked() (GameView, uint64) {
	g.seq++
	return g.viewLocked(), g.seq
}

func (g *Game) viewLocked() GameView {
	v := g.state.view(g.ID)
	v.Players.White = g.white
	v.Players.Black = g.black
	return v
}

func (g *Game) Export() SerializedState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.ToTransport()
}

// Position returns a copy of the board and the side to move.
func (g *Game) Position() (Board, Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Board(), g.state.CurrentTurn()
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	view, seq := g.commitLocked()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection and reject the new one
		g.connections.mu.Unlock()
		g.connections.writeMu.Lock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		g.connections.writeMu.Unlock()
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("connection registered", "game", g.ID, "player", playerID, "conn", fmt.Sprintf("%p", conn))

	g.broadcast(view, seq)
	return nil
}

// UnregisterConnection only removes conn if it is still the player's current
// connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Infow("connection unregistered", "game", g.ID, "player", playerID)
	}
}

func (g *Game) broadcast(view GameView, seq uint64) {
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		g.broadcastState(view, seq)
	}()
}

// broadcastState sends view to every connection unless a newer state has
// already gone out, so clients always end on the latest commit.
func (g *Game) broadcastState(view GameView, seq uint64) {
	g.connections.broadcastMu.Lock()
	defer g.connections.broadcastMu.Unlock()
	if seq <= g.connections.sentSeq {
		return
	}
	g.connections.sentSeq = seq

	msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
	if err != nil {
		log.Errorw("failed to marshal game state", "game", g.ID, "error", err)
		return
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := g.WriteTo(conn, msg); err != nil {
			log.Warnw("failed to send state", "game", g.ID, "player", playerID, "error", err)
			g.connections.mu.Lock()
			if g.connections.connections[playerID] == conn {
				delete(g.connections.connections, playerID)
			}
			g.connections.mu.Unlock()
		}
	}
}

func (g *Game) WriteTo(conn Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
