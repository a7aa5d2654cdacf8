package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// GameOptions - how a new session is set up.
type GameOptions struct {
	HumanMark tictactoe.Mark
	BotFirst  bool
}

type GamePlayService interface {
	StartGame(ctx context.Context, player *entity.Player, opts GameOptions) (*entity.Game, error)
	GetGameState(ctx context.Context, player *entity.Player) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	LeaveGame(ctx context.Context, player *entity.Player) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
	}
}

// StartGame - returns the player's unfinished game or starts a new one.
// An unfinished game started with other options is returned with ErrGameInProgress.
// A bot that moves first has already played when the game is returned.
func (that *gamePlayService) StartGame(ctx context.Context, player *entity.Player, opts GameOptions) (*entity.Game, error) {
	log := that.logger.With("method", "StartGame", "playerID", player.ID)

	if player.InGame() {
		game, err := that.gameService.GetGameByID(ctx, player.GameID)
		switch {
		case err == nil && !game.IsFinished() && game.SameSetup(opts.HumanMark, opts.BotFirst):
			return game, nil
		case err == nil && !game.IsFinished():
			return game, apperror.ErrGameInProgress
		case err == nil, errors.Is(err, apperror.ErrGameNotFound):
			log.Info("previous game is over, starting a new one", "gameID", player.GameID)
		default:
			return nil, fmt.Errorf("failed to get game: %w", err)
		}
	}

	game, err := that.gameService.CreateGame(ctx, opts.HumanMark, opts.BotFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsAutomatedTurn() {
		if _, err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	player.GameID = game.ID
	player.Mark = game.HumanMark
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	log.Info("game started", "gameID", game.ID, "humanMark", game.HumanMark, "botFirst", opts.BotFirst)

	return game, nil
}

func (that *gamePlayService) GetGameState(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if !player.InGame() {
		return nil, apperror.ErrNoActiveGame
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move and, unless that ended the game, the bot reply.
// Both land in storage together. A rejected move stores nothing.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.GetGameState(ctx, player)
	if err != nil {
		return nil, err
	}

	if err = game.HumanMove(row, col); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsFinished() {
		if _, err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		outcome := game.Outcome()
		that.logger.Info("game finished", "gameID", game.ID, "status", outcome.Status, "winner", outcome.Winner)
	}

	return game, nil
}

// LeaveGame - removes the player's game and detaches the player.
func (that *gamePlayService) LeaveGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	log := that.logger.With("method", "LeaveGame", "playerID", player.ID)

	game, err := that.GetGameState(ctx, player)
	if err != nil {
		return nil, err
	}

	if err = that.gameService.DeleteGame(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "gameID", game.ID, "error", err)
	}

	player.Leave()
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return game, nil
}
