// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns the live games. The manager lock only guards the map; each game serializes its
// own moves.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
	log   zerolog.Logger
}

func NewGameManager(log zerolog.Logger) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		log:   log,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID, gm.log)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// Count is the number of games being managed.
func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (engine.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return engine.White, err
	}

	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState()
}

func (gm *GameManager) GetSquare(gameID string, c engine.Coordinate) (engine.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return engine.Square{}, err
	}

	return game.Square(c), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, mv engine.Move) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.MakeMove(playerID, mv)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn ws.Writer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn ws.Writer) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}
