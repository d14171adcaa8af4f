package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Set by middleware.WebSocketUpgrade before the upgrade
	gameID, _ := c.Locals(middleware.WSGameIDKey).(string)
	playerID, _ := c.Locals(middleware.WSPlayerIDKey).(string)
	log := wsc.log.With().Str("gameId", gameID).Str("playerId", playerID).Logger()
	conn := ws.NewSyncWriter(c)

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Info().Err(err).Msg("connection refused")
		wsc.sendError(conn, err)
		conn.Close()
		return
	}

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read ended")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Errorf("%w: %v", errBadBody, err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(conn, err)
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, playerID, conn)
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("%w: %v", errBadBody, err)
		}
		// the new state reaches this connection through the game broadcast
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	default:
		return fmt.Errorf("%w: unknown message type %q", errBadBody, msg.Type)
	}
}

// sendError reports err to one connection using the same bodies as the REST routes.
func (wsc *WebSocketController) sendError(conn ws.Writer, err error) {
	status, body := errorResponse(err)
	if status >= 500 {
		wsc.log.Error().Err(err).Msg("websocket request failed")
	}
	msg, encErr := ws.NewMessage(ws.MessageTypeError, body)
	if encErr != nil {
		wsc.log.Error().Err(encErr).Msg("encode error message")
		return
	}
	if werr := conn.WriteJSON(msg); werr != nil {
		wsc.log.Debug().Err(werr).Msg("send error failed")
	}
}
