package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	game, err := wsc.gameService.GetGame(gameID)
	if err != nil {
		log.Warnw("websocket for unknown game", "game", gameID, "player", playerID)
		c.Close()
		return
	}
	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnw("failed to register connection", "game", gameID, "player", playerID, "error", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("websocket closed", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(game, c, ws.MessageTypeError, errorPayload(err))
			continue
		}

		result := model.NewMoveResult(wsc.handleMessage(gameID, playerID, msg))
		wsc.reply(game, c, ws.MessageTypeMoveResult, result)
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err
	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID, playerID)
		return err
	case ws.MessageTypeRedo:
		_, err := wsc.gameService.Redo(gameID, playerID)
		return err
	default:
		return fmt.Errorf("%w: unknown message type %q", model.ErrInvalidPayload, msg.Type)
	}
}

func (wsc *WebSocketController) reply(game *model.Game, c *websocket.Conn, t ws.MessageType, payload interface{}) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		log.Errorw("failed to encode reply", "game", game.ID, "error", err)
		return
	}
	if err := game.WriteTo(c, msg); err != nil {
		log.Warnw("failed to write reply", "game", game.ID, "error", err)
	}
}

func errorPayload(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}
