package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StateHumanTurn     = "human_turn"
	StateAutomatedTurn = "automated_turn"
	StateFinished      = "finished"
)

var ErrUnknownGameState = errors.New("unknown game state")

// Game is one human-versus-bot session. The outcome is always derived from the board.
type Game struct {
	ID        string          `json:"id"`
	Board     tictactoe.Board `json:"board"`
	HumanMark tictactoe.Mark  `json:"human_mark"`
	BotMark   tictactoe.Mark  `json:"bot_mark"`
	State     string          `json:"state"`
	BotFirst  bool            `json:"bot_first"`
	Moves     int             `json:"moves"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewGame - creates a session where the human plays humanMark. The human moves first unless botFirst is set.
func NewGame(id string, humanMark tictactoe.Mark, botFirst bool) (*Game, error) {
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", tictactoe.ErrInvalidMark, humanMark)
	}

	state := StateHumanTurn
	if botFirst {
		state = StateAutomatedTurn
	}

	return &Game{
		ID:        id,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
		State:     state,
		BotFirst:  botFirst,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Outcome - recomputes the result from the board.
func (that *Game) Outcome() tictactoe.Outcome {
	return that.Board.Evaluate()
}

func (that *Game) IsFinished() bool {
	return that.State == StateFinished
}

// SameSetup - the game was started with these options.
func (that *Game) SameSetup(humanMark tictactoe.Mark, botFirst bool) bool {
	return that.HumanMark == humanMark && that.BotFirst == botFirst
}

func (that *Game) IsHumanTurn() bool {
	return that.State == StateHumanTurn
}

func (that *Game) IsAutomatedTurn() bool {
	return that.State == StateAutomatedTurn
}

// HumanMove - applies the human's mark. Invalid moves leave the game untouched.
func (that *Game) HumanMove(row, col int) error {
	if err := that.confirmTurn(StateHumanTurn); err != nil {
		return err
	}

	if err := that.applyMove(row, col, that.HumanMark); err != nil {
		return err
	}

	that.advance(StateAutomatedTurn)

	return nil
}

// AutomatedMove - applies the bot's chosen cell.
func (that *Game) AutomatedMove(cell tictactoe.Cell) error {
	if err := that.confirmTurn(StateAutomatedTurn); err != nil {
		return err
	}

	if err := that.applyMove(cell.Row, cell.Col, that.BotMark); err != nil {
		return err
	}

	that.advance(StateHumanTurn)

	return nil
}

func (that *Game) confirmTurn(expected string) error {
	switch that.State {
	case StateFinished:
		return apperror.ErrGameFinished
	case expected:
		return nil
	case StateHumanTurn, StateAutomatedTurn:
		return apperror.ErrNotYourTurn
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameState, that.State)
	}
}

func (that *Game) applyMove(row, col int, mark tictactoe.Mark) error {
	if err := that.Board.Apply(row, col, mark); err != nil {
		if errors.Is(err, tictactoe.ErrGameFinished) {
			that.State = StateFinished
			return apperror.ErrGameFinished
		}

		return fmt.Errorf("invalid move: %w", err)
	}

	that.Moves++

	return nil
}

// advance - a terminal board finishes the game regardless of whose turn is next.
func (that *Game) advance(next string) {
	if that.Outcome().IsTerminal() {
		that.State = StateFinished
		return
	}

	that.State = next
}
