package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	return gs.addGame(model.NewGameState())
}

func (gs *GameService) addGame(state *model.GameState) (string, error) {
	gameID := uuid.New().String()
	if err := gs.gameManager.AddGame(model.NewGameFromState(gameID, state)); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// ImportGame starts a new game from a serialized board. Move history does not
// survive the round trip.
func (gs *GameService) ImportGame(state model.SerializedState) (string, error) {
	restored, err := model.FromTransport(state)
	if err != nil {
		return "", err
	}
	return gs.addGame(restored)
}

func (gs *GameService) ImportFEN(s string) (string, error) {
	restored, err := fen.Decode(s)
	if err != nil {
		return "", err
	}
	return gs.addGame(restored)
}

func (gs *GameService) JoinGame(gameID, playerID, name string) (model.ClientPlayer, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID, name)
}

func (gs *GameService) JoinMatchmaking(playerID, name string) error {
	return gs.gameManager.JoinMatchmaking(model.Player{ID: playerID, Name: name})
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, move model.SimpleMove) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	if err := game.MakeMove(playerID, move.From, move.To); err != nil {
		return game.View(), err
	}
	return game.View(), nil
}

func (gs *GameService) Undo(gameID, playerID string) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	if err := game.Undo(playerID); err != nil {
		return game.View(), err
	}
	return game.View(), nil
}

func (gs *GameService) Redo(gameID, playerID string) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	if err := game.Redo(playerID); err != nil {
		return game.View(), err
	}
	return game.View(), nil
}

func (gs *GameService) ValidMoves(gameID string, from model.Position, legalOnly bool) ([]model.Position, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !from.Valid() {
		return nil, model.ErrOutOfBounds
	}
	return game.ValidMoves(from, legalOnly), nil
}

func (gs *GameService) ExportGame(gameID string) (model.SerializedState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.SerializedState{}, err
	}
	return game.Export(), nil
}

func (gs *GameService) ExportFEN(gameID string) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	board, turn := game.Position()
	return fen.Encode(board, turn), nil
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
