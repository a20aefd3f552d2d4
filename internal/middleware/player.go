package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PlayerIDKey is the c.Locals key holding the caller's player ID.
const PlayerIDKey = "playerID"

const maxPlayerIDLen = 64

// EnsurePlayerID resolves the caller's player ID from the X-Player-ID header,
// falling back to the playerId query parameter, and rejects the request when
// neither carries a usable value.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(PlayerIDKey) != nil {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query("playerId"))
		}
		switch {
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		case len(playerID) > maxPlayerIDLen:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player ID is too long",
			})
		}

		c.Locals(PlayerIDKey, playerID)
		return c.Next()
	}
}
