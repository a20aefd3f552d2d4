package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrGameNotFound, fiber.StatusNotFound},
	{model.ErrOutOfBounds, fiber.StatusBadRequest},
	{model.ErrInvalidPayload, fiber.StatusBadRequest},
	{fen.ErrInvalidFEN, fiber.StatusBadRequest},
	{model.ErrEmptySquare, fiber.StatusUnprocessableEntity},
	{model.ErrIllegalMove, fiber.StatusUnprocessableEntity},
	{model.ErrSelfCheck, fiber.StatusUnprocessableEntity},
	{model.ErrWrongTurn, fiber.StatusConflict},
	{model.ErrNotYourTurn, fiber.StatusConflict},
	{model.ErrNothingToUndo, fiber.StatusConflict},
	{model.ErrNothingToRedo, fiber.StatusConflict},
	{model.ErrGameFull, fiber.StatusConflict},
	{model.ErrAlreadyQueued, fiber.StatusConflict},
	{model.ErrNotInGame, fiber.StatusForbidden},
}

func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
