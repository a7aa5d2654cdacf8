package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"
	actionGameLeave = "game:leave"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player  *entity.Player  `json:"player,omitempty"`
	Game    *GameView       `json:"game,omitempty"`
	Cell    *tictactoe.Cell `json:"cell,omitempty"`
	Options *Options        `json:"options,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Options - client overrides for a new game, unset fields fall back to the server defaults.
type Options struct {
	Mark     tictactoe.Mark `json:"mark,omitempty"`
	BotFirst *bool          `json:"bot_first,omitempty"`
}

// GameView is what a client sees of a game.
type GameView struct {
	ID        string            `json:"id"`
	Board     tictactoe.Board   `json:"board"`
	HumanMark tictactoe.Mark    `json:"human_mark"`
	BotMark   tictactoe.Mark    `json:"bot_mark"`
	State     string            `json:"state"`
	Moves     int               `json:"moves"`
	Outcome   tictactoe.Outcome `json:"outcome"`
}

func newGameView(game *entity.Game) *GameView {
	if game == nil {
		return nil
	}

	return &GameView{
		ID:        game.ID,
		Board:     game.Board,
		HumanMark: game.HumanMark,
		BotMark:   game.BotMark,
		State:     game.State,
		Moves:     game.Moves,
		Outcome:   game.Outcome(),
	}
}

var clientErrors = []error{
	tictactoe.ErrInvalidCell,
	tictactoe.ErrInvalidMark,
	tictactoe.ErrCellOccupied,
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNoActiveGame,
	apperror.ErrGameNotFound,
	apperror.ErrGameInProgress,
	apperror.ErrPlayerNotFound,
}

// errorText - the sentinel's text for errors a client can act on, a generic text otherwise.
func errorText(err error) (string, bool) {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error(), true
		}
	}

	return "internal error", false
}
