package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// PlayerIDKey is the Locals key holding the caller's player ID.
const PlayerIDKey = "playerID"

// EnsurePlayerID identifies the caller by the X-Player-ID header, falling back to the playerId query
// parameter (browsers cannot set headers on a websocket handshake). Anonymous requests get a 401.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, _ := c.Locals(PlayerIDKey).(string); id != "" {
			return c.Next()
		}

		id := strings.TrimSpace(c.Get("X-Player-ID"))
		if id == "" {
			id = strings.TrimSpace(c.Query("playerId"))
		}
		if id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ws.ErrorPayload{Error: "player ID is required"})
		}

		// header and query values alias fasthttp's request buffer, which is reused after the handler
		c.Locals(PlayerIDKey, utils.CopyString(id))
		return c.Next()
	}
}
