package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StrategyMinimax = "minimax"
	StrategyRandom  = "random"
)

var ErrUnknownStrategy = errors.New("unknown bot strategy")

type BotService interface {
	MakeTurn(game *entity.Game) (tictactoe.Cell, error)
}

type pickFunc func(board tictactoe.Board, bot, human tictactoe.Mark) (tictactoe.Cell, error)

type botService struct {
	logger   *slog.Logger
	strategy string
	pick     pickFunc
}

func NewBotService(logger *slog.Logger, strategy string) (BotService, error) {
	var pick pickFunc

	switch strategy {
	case StrategyMinimax:
		pick = tictactoe.BestMove
	case StrategyRandom:
		pick = randomMove
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	return &botService{
		logger:   logger.With("component", "bot", "strategy", strategy),
		strategy: strategy,
		pick:     pick,
	}, nil
}

// MakeTurn - chooses a cell for the bot and applies it. The search runs synchronously.
func (that *botService) MakeTurn(game *entity.Game) (tictactoe.Cell, error) {
	if game.IsFinished() {
		return tictactoe.Cell{}, apperror.ErrGameFinished
	}

	if !game.IsAutomatedTurn() {
		return tictactoe.Cell{}, apperror.ErrNotYourTurn
	}

	started := time.Now()

	cell, err := that.pick(game.Board, game.BotMark, game.HumanMark)
	if err != nil {
		return tictactoe.Cell{}, fmt.Errorf("bot failed to choose a cell: %w", err)
	}

	if err = game.AutomatedMove(cell); err != nil {
		return tictactoe.Cell{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn",
		"gameID", game.ID,
		"row", cell.Row,
		"col", cell.Col,
		"took", time.Since(started),
	)

	return cell, nil
}

func randomMove(board tictactoe.Board, _, _ tictactoe.Mark) (tictactoe.Cell, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return tictactoe.Cell{}, tictactoe.ErrNoAvailableMoves
	}

	return availableCells[rand.IntN(len(availableCells))], nil //nolint: gosec // it's ok
}
