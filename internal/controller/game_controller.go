package controller

import (
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const matchmakingWait = 30 * time.Second

type GameController struct {
	gameService *service.GameService
	matchWait   time.Duration
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
		matchWait:   matchmakingWait,
	}
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/create", gc.CreateGame)
	router.Post("/import", gc.ImportGame)
	router.Post("/import/fen", gc.ImportFEN)
	router.Post("/matchmaking/join", gc.JoinMatchmaking)
	router.Post("/matchmaking/leave", gc.LeaveMatchmaking)
	router.Get("/matchmaking/wait", gc.WaitForMatch)
	router.Post("/join/:gameId", gc.JoinGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/undo", gc.Undo)
	router.Post("/:gameId/redo", gc.Redo)
	router.Get("/:gameId/moves", gc.ValidMoves)
	router.Get("/:gameId/export", gc.ExportGame)
	router.Get("/:gameId/fen", gc.ExportFEN)
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.PlayerIDKey).(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	log.Infow("game created", "game", gameID, "player", playerID(c))
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var state model.SerializedState
	if err := c.BodyParser(&state); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	gameID, err := gc.gameService.ImportGame(state)
	if err != nil {
		log.Warnw("game import rejected", "player", playerID(c), "error", err)
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game imported",
		"game_id": gameID,
	})
}

func (gc *GameController) ImportFEN(c *fiber.Ctx) error {
	var req struct {
		FEN string `json:"fen"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	gameID, err := gc.gameService.ImportFEN(req.FEN)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game imported",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	player, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c), req.Name)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   player.Color,
		"name":    player.Name,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	view, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	return sendResult(c, view, err)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	view, err := gc.gameService.Undo(c.Params("gameId"), playerID(c))
	return sendResult(c, view, err)
}

func (gc *GameController) Redo(c *fiber.Ctx) error {
	view, err := gc.gameService.Redo(c.Params("gameId"), playerID(c))
	return sendResult(c, view, err)
}

// sendResult answers a move-like request with the result and the state the
// game is in afterwards; a rejection leaves that state unchanged.
func sendResult(c *fiber.Ctx, view model.GameView, err error) error {
	if err != nil && view.ID == "" {
		return sendError(c, err)
	}
	status := fiber.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	return c.Status(status).JSON(fiber.Map{
		"result": model.NewMoveResult(err),
		"state":  view,
	})
}

func (gc *GameController) ValidMoves(c *fiber.Ctx) error {
	from := model.Position{
		Row: c.QueryInt("row", -1),
		Col: c.QueryInt("col", -1),
	}
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), from, c.QueryBool("legal", false))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) ExportGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ExportGame(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ExportFEN(c *fiber.Ctx) error {
	s, err := gc.gameService.ExportFEN(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"fen": s})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if err := gc.gameService.JoinMatchmaking(playerID(c), req.Name); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	removed := gc.gameService.LeaveMatchmaking(playerID(c))
	return c.JSON(fiber.Map{
		"removed": removed,
	})
}

// WaitForMatch blocks until the player is paired, the wait times out or the
// server shuts down.
func (gc *GameController) WaitForMatch(c *fiber.Ctx) error {
	id := playerID(c)
	ch := make(chan string, 1)
	gc.gameService.RegisterMatchmakingChannel(id, ch)

	timer := time.NewTimer(gc.matchWait)
	defer timer.Stop()

	select {
	case event, ok := <-ch:
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "superseded by a newer wait",
			})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(event)
	case <-timer.C:
		gc.gameService.UnregisterMatchmakingChannel(id)
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
			"status": "waiting",
		})
	case <-c.Context().Done():
		gc.gameService.UnregisterMatchmakingChannel(id)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "server shutting down",
		})
	}
}
