package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewGameController(gameService *service.GameService, log zerolog.Logger) *GameController {
	return &GameController{gameService: gameService, log: log}
}

// replayRequest is a move list to play from the start, plus an optional move to try after it.
type replayRequest struct {
	Moves []model.WSMove `json:"moves"`
	Move  *model.WSMove  `json:"move"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return gc.fail(c, fmt.Errorf("%w: %v", errBadBody, err))
	}

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) GetSquare(c *fiber.Ctx) error {
	square, err := gc.gameService.GetSquare(c.Params("gameId"), c.Params("coord"))
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(square)
}

// Replay plays a posted move list from the starting position. It never touches a live game.
func (gc *GameController) Replay(c *fiber.Ctx) error {
	var req replayRequest
	if err := c.BodyParser(&req); err != nil {
		return gc.fail(c, fmt.Errorf("%w: %v", errBadBody, err))
	}

	position, err := gc.gameService.Replay(req.Moves, req.Move)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(position)
}

// playerID is the caller identified by middleware.EnsurePlayerID, or "" on a route mounted without it.
func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.PlayerIDKey).(string)
	return id
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status == fiber.StatusInternalServerError {
		gc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(body)
}
