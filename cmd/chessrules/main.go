// Command chessrules replays a game given as long algebraic moves and prints the resulting board.
//
//	chessrules [-plain] e2e4 e7e5 g1f3
//
// It exits 1 when a move is rejected by the rules and 2 on any other failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/render"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitFailure  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()

	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)
	fs.SetOutput(stderr)
	plain := fs.Bool("plain", false, "print without colors")
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	moves := make([]engine.Move, 0, fs.NArg())
	for _, arg := range fs.Args() {
		mv, err := engine.ParseMove(arg)
		if err != nil {
			log.Error().Err(err).Str("move", arg).Msg("bad move")
			return exitFailure
		}
		moves = append(moves, mv)
	}

	p, replayErr := engine.Replay(moves)
	if err := render.Board(stdout, &p.Board, *plain); err != nil {
		log.Error().Err(err).Msg("render board")
		return exitFailure
	}
	if err := render.Moves(stdout, p.History); err != nil {
		log.Error().Err(err).Msg("render moves")
		return exitFailure
	}
	if _, err := fmt.Fprintln(stdout, render.Status(p)); err != nil {
		log.Error().Err(err).Msg("render status")
		return exitFailure
	}

	if replayErr != nil {
		if reason, ok := engine.ReasonOf(replayErr); ok {
			log.Error().Stringer("reason", reason).Msg(replayErr.Error())
			return exitRejected
		}
		log.Error().Err(replayErr).Msg("replay failed")
		return exitFailure
	}
	return exitOK
}
