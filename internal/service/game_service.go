package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
	log         zerolog.Logger
	newID       func() string
}

func NewGameService(gameManager *GameManager, log zerolog.Logger) *GameService {
	return &GameService{
		gameManager: gameManager,
		log:         log,
		newID:       func() string { return uuid.New().String() },
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (engine.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := gs.newID()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	gs.log.Info().Str("gameId", gameID).Msg("game created")
	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// GetSquare looks up one square of a game by its algebraic name.
func (gs *GameService) GetSquare(gameID string, coord string) (engine.Square, error) {
	c, err := engine.ParseCoordinate(coord)
	if err != nil {
		return engine.Square{}, err
	}
	return gs.gameManager.GetSquare(gameID, c)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.GameState, error) {
	mv, err := move.Parse()
	if err != nil {
		return model.GameState{}, err
	}

	return gs.gameManager.MakeMove(gameID, playerID, mv)
}

// Replay plays moves and then next, if given, from the starting position without touching any live
// game. On failure the position reached before the failing move is returned with the error.
func (gs *GameService) Replay(moves []model.WSMove, next *model.WSMove) (*engine.Position, error) {
	if next != nil {
		moves = append(moves[:len(moves):len(moves)], *next)
	}
	parsed, err := model.ParseMoves(moves)
	if err != nil {
		return nil, err
	}

	p, err := engine.Replay(parsed)
	if err != nil {
		if _, rejected := engine.ReasonOf(err); rejected {
			gs.log.Debug().Err(err).Msg("replay rejected")
		} else {
			gs.log.Error().Err(err).Msg("replay failed")
		}
	}
	return p, err
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn ws.Writer) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn ws.Writer) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
