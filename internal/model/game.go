package model

import (
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]ws.Writer // playerID -> connection
	mu          sync.RWMutex
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	position    *engine.Position
	players     Seats
	connections *GameConnections // Connections just for this game
	log         zerolog.Logger
}

// GameState is what clients see of a game: the full position plus seats and the moves available to
// the side to move.
type GameState struct {
	ID         string           `json:"gameId"`
	Players    Seats            `json:"players"`
	ToMove     engine.Color     `json:"toMove"`
	LegalMoves []engine.Move    `json:"legalMoves"`
	Position   *engine.Position `json:"position"`
}

func NewGame(id string, log zerolog.Logger) *Game {
	return &Game{
		ID:          id,
		position:    engine.NewGame(),
		connections: NewGameConnections(),
		log:         log.With().Str("gameId", id).Logger(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]ws.Writer),
	}
}

// AddPlayer seats playerID, White first and then Black. A player already seated gets their color back.
func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	if playerID == "" {
		return engine.White, ErrNotAPlayer
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.players.colorOf(playerID); ok {
		return color, nil
	}
	for _, color := range [2]engine.Color{engine.White, engine.Black} {
		if seat := g.players.seat(color); *seat == "" {
			*seat = playerID
			g.log.Info().Str("playerId", playerID).Stringer("color", color).Msg("player seated")
			return color, nil
		}
	}
	return engine.White, ErrGameFull
}

func (g *Game) GetState() (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() (GameState, error) {
	moves, err := g.position.LegalMoves()
	if err != nil {
		return GameState{}, err
	}
	return GameState{
		ID:         g.ID,
		Players:    g.players,
		ToMove:     g.position.ToMove(),
		LegalMoves: moves,
		Position:   g.position.Clone(),
	}, nil
}

// Square returns the square at c.
func (g *Game) Square(c engine.Coordinate) engine.Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position.Square(c)
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	_, ok := g.players.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return !g.players.full()
}

// MakeMove plays mv for playerID. Only the seated player whose side is to move may move; the engine
// decides legality. On success the new state is pushed to every connection.
func (g *Game) MakeMove(playerID string, mv engine.Move) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	log := g.log.With().Str("playerId", playerID).Stringer("from", mv.From).Stringer("to", mv.To).Logger()

	color, ok := g.players.colorOf(playerID)
	if !ok {
		return GameState{}, ErrNotAPlayer
	}
	if g.position.State == engine.InProgress && color != g.position.ToMove() {
		return GameState{}, ErrNotYourTurn
	}

	if err := g.position.ApplyMove(mv); err != nil {
		if reason, rejected := engine.ReasonOf(err); rejected {
			log.Debug().Stringer("reason", reason).Msg("move rejected")
		} else {
			log.Error().Err(err).Msg("move failed")
		}
		return GameState{}, err
	}

	state, err := g.state()
	if err != nil {
		log.Error().Err(err).Msg("state after move")
		return GameState{}, err
	}
	log.Debug().Stringer("state", state.Position.State).Msg("move played")

	// broadcasting under g.mu keeps updates in move order
	g.broadcastState(state)
	return state, nil
}

// RegisterConnection adds conn as playerID's observer and sends it the current state. g.mu is held
// until that first send is written, so a concurrent move is always broadcast after it.
func (g *Game) RegisterConnection(playerID string, conn ws.Writer) error {
	connID := fmt.Sprintf("%p", conn)

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) && !g.canSpectate() {
		return ErrNotAuthorized
	}
	state, err := g.state()
	if err != nil {
		return err
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil // Not really an error, just rejecting duplicate connection
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.log.Info().Str("playerId", playerID).Str("conn", connID).Msg("connection registered")

	g.send(playerID, conn, state)
	return nil
}

// UnregisterConnection forgets conn, unless playerID has since been registered with another one.
func (g *Game) UnregisterConnection(playerID string, conn ws.Writer) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		g.log.Info().Str("playerId", playerID).Msg("connection unregistered")
	}
}

// ConnectionCount is the number of live observers of the game.
func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

func (g *Game) broadcastState(state GameState) {
	// Make a copy of the connections we need to broadcast to
	g.connections.mu.RLock()
	activeConnections := make(map[string]ws.Writer, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		g.send(playerID, conn, state)
	}
}

// send writes state to one connection and drops the connection if the write fails.
func (g *Game) send(playerID string, conn ws.Writer, state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		g.log.Error().Err(err).Msg("encode game state")
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		g.log.Warn().Err(err).Str("playerId", playerID).Msg("send state failed, dropping connection")
		g.UnregisterConnection(playerID, conn)
	}
}
