package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// Locals keys carried from the upgrade request into the websocket handler.
const (
	WSGameIDKey   = "wsGameID"
	WSPlayerIDKey = "wsPlayerID"
)

// WebSocketUpgrade lets only genuine upgrade requests for an identified player through, and copies
// the game and player IDs to where the websocket handler can read them.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		playerID, _ := c.Locals(PlayerIDKey).(string)
		switch {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(ws.ErrorPayload{Error: "game ID is required"})
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(ws.ErrorPayload{Error: "player ID is required"})
		}

		// the websocket handler outlives this request
		c.Locals(WSGameIDKey, utils.CopyString(gameID))
		c.Locals(WSPlayerIDKey, playerID)
		return c.Next()
	}
}
