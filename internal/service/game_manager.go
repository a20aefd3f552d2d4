package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair seats the two longest-waiting players in a new game and
// reports whether a pair was made.
func (gm *GameManager) matchNextPair() bool {
	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID)
	p1Color, err := game.AddPlayer(player1.ID, displayName(player1.Name))
	if err != nil {
		log.Errorw("failed to seat matched player", "game", gameID, "player", player1.ID, "error", err)
		return true
	}
	p2Color, err := game.AddPlayer(player2.ID, displayName(player2.Name))
	if err != nil {
		log.Errorw("failed to seat matched player", "game", gameID, "player", player2.ID, "error", err)
		return true
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = game
	log.Infow("match created", "game", gameID, "white", player1.ID, "black", player2.ID)

	sent1 := gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	sent2 := gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	if !sent1 || !sent2 {
		log.Warnw("failed to notify all players of match", "game", gameID)
	}
	return true
}

// notifyMatch sends the event on the player's channel and closes it. Caller
// holds gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	delete(gm.matchingChannels, playerID)
	defer close(ch)

	select {
	case ch <- mustJSON(event):
		return true
	default:
		return false
	}
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func displayName(name string) string {
	if name != "" {
		return name
	}
	return petname.Generate(2, "-")
}

func (gm *GameManager) AddGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return errors.New("game already exists")
	}
	gm.games[game.ID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID, name string) (model.ClientPlayer, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.ClientPlayer{}, err
	}
	name = displayName(name)
	color, err := game.AddPlayer(playerID, name)
	if err != nil {
		return model.ClientPlayer{}, err
	}
	return model.ClientPlayer{ID: playerID, Name: name, Color: color}, nil
}

func (gm *GameManager) JoinMatchmaking(player model.Player) error {
	return gm.queue.AddPlayer(player)
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
